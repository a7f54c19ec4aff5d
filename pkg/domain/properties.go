package domain

// BeamType distinguishes how a beam's pointing angles are interpreted.
type BeamType int32

const (
	// BeamAbsolute aims the beam in absolute angles.
	BeamAbsolute BeamType = iota
	// BeamBodyRelative aims the beam relative to the host body frame.
	BeamBodyRelative
	// BeamTarget slaves the beam to a target entity.
	BeamTarget
)

// GateType distinguishes how a gate's geometry is interpreted.
type GateType int32

const (
	// GateAbsolute positions the gate in absolute angles.
	GateAbsolute GateType = iota
	// GateBodyRelative positions the gate relative to the host beam.
	GateBodyRelative
	// GateTarget slaves the gate to the host beam's target.
	GateTarget
)

// PlatformProperties are the identity-fixed attributes of a platform,
// settable only through the creation transaction.
type PlatformProperties struct {
	ID ObjectID
	// OriginalID is the identifier the entity carried in its source data,
	// preserved for cross-store correlation. Zero means unset.
	OriginalID uint64
	// Source names the file or feed the entity came from.
	Source string
}

// Clone returns a deep copy.
func (p *PlatformProperties) Clone() *PlatformProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// BeamProperties are the identity-fixed attributes of a beam.
type BeamProperties struct {
	ID         ObjectID
	HostID     ObjectID
	OriginalID uint64
	Source     string
	Type       BeamType
}

// Clone returns a deep copy.
func (p *BeamProperties) Clone() *BeamProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// GateProperties are the identity-fixed attributes of a gate.
type GateProperties struct {
	ID         ObjectID
	HostID     ObjectID
	OriginalID uint64
	Source     string
	Type       GateType
}

// Clone returns a deep copy.
func (p *GateProperties) Clone() *GateProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// LaserProperties are the identity-fixed attributes of a laser.
type LaserProperties struct {
	ID         ObjectID
	HostID     ObjectID
	OriginalID uint64
	Source     string
	// AzElRelativeToHostHeading orients the laser's azimuth and elevation
	// relative to the host's heading rather than true north.
	AzElRelativeToHostHeading bool
}

// Clone returns a deep copy.
func (p *LaserProperties) Clone() *LaserProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// ProjectorProperties are the identity-fixed attributes of a projector.
type ProjectorProperties struct {
	ID         ObjectID
	HostID     ObjectID
	OriginalID uint64
	Source     string
}

// Clone returns a deep copy.
func (p *ProjectorProperties) Clone() *ProjectorProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// LOBGroupProperties are the identity-fixed attributes of a line-of-bearing
// group.
type LOBGroupProperties struct {
	ID         ObjectID
	HostID     ObjectID
	OriginalID uint64
	Source     string
}

// Clone returns a deep copy.
func (p *LOBGroupProperties) Clone() *LOBGroupProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// CustomRenderingProperties are the identity-fixed attributes of a custom
// rendering entity.
type CustomRenderingProperties struct {
	ID         ObjectID
	HostID     ObjectID
	OriginalID uint64
	Source     string
	// Renderer names the rendering plugin responsible for drawing the entity.
	Renderer string
}

// Clone returns a deep copy.
func (p *CustomRenderingProperties) Clone() *CustomRenderingProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}
