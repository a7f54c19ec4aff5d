package domain

// ScenarioProperties are store-wide settings, editable through a scenario
// properties transaction.
type ScenarioProperties struct {
	// ReferenceYear anchors scenario time zero. Zero means unset.
	ReferenceYear int32
	// Classification is a display banner string.
	Classification string
	// Description is free-form scenario text.
	Description string
	// Source names the file or feed the scenario came from.
	Source string
	// IgnoreDuplicateGenericData drops generic data appends whose value
	// matches the tag's current last value while data limiting is active.
	IgnoreDuplicateGenericData bool
	// DataLimitPoints is the scenario-wide fallback point cap applied to
	// entities with no per-entity limit. Zero means unbounded.
	DataLimitPoints uint32
	// DataLimitTime is the scenario-wide fallback trailing window in
	// seconds. Zero means unbounded.
	DataLimitTime float64
}

// Clone returns a copy.
func (p *ScenarioProperties) Clone() *ScenarioProperties {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

// ScenarioDefaults are the initial preferences granted to newly created
// entities. A nil per-type entry means new entities of that type start with
// empty prefs.
type ScenarioDefaults struct {
	Platform        *PlatformPrefs
	Beam            *BeamPrefs
	Gate            *GatePrefs
	Laser           *LaserPrefs
	Projector       *ProjectorPrefs
	LOBGroup        *LOBGroupPrefs
	CustomRendering *CustomRenderingPrefs
}

// Clone returns a deep copy.
func (d *ScenarioDefaults) Clone() *ScenarioDefaults {
	if d == nil {
		return nil
	}
	return &ScenarioDefaults{
		Platform:        d.Platform.Clone(),
		Beam:            d.Beam.Clone(),
		Gate:            d.Gate.Clone(),
		Laser:           d.Laser.Clone(),
		Projector:       d.Projector.Clone(),
		LOBGroup:        d.LOBGroup.Clone(),
		CustomRendering: d.CustomRendering.Clone(),
	}
}
