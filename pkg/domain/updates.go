package domain

import "trackstore/pkg/geodesy"

// StaticTime is the timestamp given to the single update of a static entity.
// Static entities never expire in file mode and are exempt from data
// limiting below one point.
const StaticTime = -1.0

// PlatformUpdate is one kinematic sample of a platform. Position is ECEF
// meters. Orientation (yaw/pitch/roll, radians) and Velocity (ECEF meters
// per second) are optional and interpolate only when both surrounding
// samples carry them.
type PlatformUpdate struct {
	Time        float64
	Position    geodesy.Vec3
	Orientation *geodesy.Vec3
	Velocity    *geodesy.Vec3
}

// Timestamp returns the sample time in seconds since scenario reference.
func (u *PlatformUpdate) Timestamp() float64 { return u.Time }

// Clone returns a deep copy.
func (u *PlatformUpdate) Clone() *PlatformUpdate {
	if u == nil {
		return nil
	}
	out := *u
	out.Orientation = cloneField(u.Orientation)
	out.Velocity = cloneField(u.Velocity)
	return &out
}

// BeamUpdate is one pointing sample of a beam. Angles are radians, range is
// meters.
type BeamUpdate struct {
	Time      float64
	Azimuth   float64
	Elevation float64
	Range     float64
}

// Timestamp returns the sample time in seconds since scenario reference.
func (u *BeamUpdate) Timestamp() float64 { return u.Time }

// Clone returns a copy.
func (u *BeamUpdate) Clone() *BeamUpdate {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

// GateUpdate is one geometry sample of a gate. Angles and angular widths are
// radians; ranges are meters. Width and Height values at or below zero are
// treated as unset by interpolation and carried forward from the earlier
// sample instead of blended.
type GateUpdate struct {
	Time      float64
	Azimuth   float64
	Elevation float64
	Width     float64
	Height    float64
	MinRange  float64
	MaxRange  float64
	Centroid  float64
}

// Timestamp returns the sample time in seconds since scenario reference.
func (u *GateUpdate) Timestamp() float64 { return u.Time }

// Clone returns a copy.
func (u *GateUpdate) Clone() *GateUpdate {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

// LaserUpdate is one pointing sample of a laser, as yaw/pitch/roll radians.
type LaserUpdate struct {
	Time        float64
	Orientation geodesy.Vec3
}

// Timestamp returns the sample time in seconds since scenario reference.
func (u *LaserUpdate) Timestamp() float64 { return u.Time }

// Clone returns a copy.
func (u *LaserUpdate) Clone() *LaserUpdate {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

// ProjectorUpdate is one field-of-view sample of a projector, radians. An
// HFOV at or below zero is treated as unset by interpolation.
type ProjectorUpdate struct {
	Time float64
	FOV  float64
	HFOV float64
}

// Timestamp returns the sample time in seconds since scenario reference.
func (u *ProjectorUpdate) Timestamp() float64 { return u.Time }

// Clone returns a copy.
func (u *ProjectorUpdate) Clone() *ProjectorUpdate {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

// LOBPoint is a single bearing within a line-of-bearing group update.
// Angles are radians relative to the host.
type LOBPoint struct {
	Azimuth   float64
	Elevation float64
}

// LOBGroupUpdate is one sample of a line-of-bearing group, carrying the
// bearings observed at that time. LOB groups are never interpolated.
type LOBGroupUpdate struct {
	Time   float64
	Points []LOBPoint
}

// Timestamp returns the sample time in seconds since scenario reference.
func (u *LOBGroupUpdate) Timestamp() float64 { return u.Time }

// Clone returns a deep copy.
func (u *LOBGroupUpdate) Clone() *LOBGroupUpdate {
	if u == nil {
		return nil
	}
	out := *u
	if u.Points != nil {
		out.Points = make([]LOBPoint, len(u.Points))
		copy(out.Points, u.Points)
	}
	return &out
}
