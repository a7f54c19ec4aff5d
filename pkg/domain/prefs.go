package domain

// Preference fields are pointers so that "unset" is distinguishable from a
// zero value. Merge semantics depend on it: only fields carried by the
// incoming prefs overwrite the stored value, everything else is preserved.

func cloneField[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func mergeField[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func clearField[T any](dst **T, mask *T) {
	if mask != nil {
		*dst = nil
	}
}

// CommonPrefs are the preferences shared by every entity type.
type CommonPrefs struct {
	// Name is the entity's display name. Renames are observable through
	// listener name-change callbacks.
	Name *string
	// UseAlias selects Alias over Name for display when both are present.
	UseAlias *bool
	// Alias is an alternate display name.
	Alias *string
	// Draw toggles rendering of the entity.
	Draw *bool
	// DataDraw gates whether command replay applies to the entity. Treated
	// as true when unset.
	DataDraw *bool
	// Color is a packed RGBA override.
	Color *uint32
	// DataLimitPoints caps the entity's retained update and command points.
	// Zero or unset means unbounded.
	DataLimitPoints *uint32
	// DataLimitTime caps retained history to a trailing window in seconds.
	// Zero or unset means unbounded.
	DataLimitTime *float64
}

// Clone returns a deep copy.
func (p *CommonPrefs) Clone() *CommonPrefs {
	if p == nil {
		return nil
	}
	return &CommonPrefs{
		Name:            cloneField(p.Name),
		UseAlias:        cloneField(p.UseAlias),
		Alias:           cloneField(p.Alias),
		Draw:            cloneField(p.Draw),
		DataDraw:        cloneField(p.DataDraw),
		Color:           cloneField(p.Color),
		DataLimitPoints: cloneField(p.DataLimitPoints),
		DataLimitTime:   cloneField(p.DataLimitTime),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *CommonPrefs) MergeFrom(src *CommonPrefs) {
	if src == nil {
		return
	}
	mergeField(&p.Name, src.Name)
	mergeField(&p.UseAlias, src.UseAlias)
	mergeField(&p.Alias, src.Alias)
	mergeField(&p.Draw, src.Draw)
	mergeField(&p.DataDraw, src.DataDraw)
	mergeField(&p.Color, src.Color)
	mergeField(&p.DataLimitPoints, src.DataLimitPoints)
	mergeField(&p.DataLimitTime, src.DataLimitTime)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *CommonPrefs) ClearFieldsSetIn(mask *CommonPrefs) {
	if mask == nil {
		return
	}
	clearField(&p.Name, mask.Name)
	clearField(&p.UseAlias, mask.UseAlias)
	clearField(&p.Alias, mask.Alias)
	clearField(&p.Draw, mask.Draw)
	clearField(&p.DataDraw, mask.DataDraw)
	clearField(&p.Color, mask.Color)
	clearField(&p.DataLimitPoints, mask.DataLimitPoints)
	clearField(&p.DataLimitTime, mask.DataLimitTime)
}

// DisplayName returns the alias when UseAlias is true and an alias is set,
// otherwise the name. Unset fields read as empty.
func (p *CommonPrefs) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.UseAlias != nil && *p.UseAlias && p.Alias != nil && *p.Alias != "" {
		return *p.Alias
	}
	if p.Name != nil {
		return *p.Name
	}
	return ""
}

// DataDrawEnabled reports the DataDraw gate, defaulting to true when unset.
func (p *CommonPrefs) DataDrawEnabled() bool {
	if p == nil || p.DataDraw == nil {
		return true
	}
	return *p.DataDraw
}

// PlatformPrefs are the mutable preferences of a platform.
type PlatformPrefs struct {
	Common CommonPrefs
	// Icon names the model or icon used to render the platform.
	Icon *string
	// Scale multiplies the rendered model size.
	Scale *float64
	// InterpolatePos enables position interpolation for this platform when
	// the store's interpolation is on. Treated as true when unset.
	InterpolatePos *bool
	// SurfaceClamping pins the platform to the terrain surface.
	SurfaceClamping *bool
}

// Clone returns a deep copy.
func (p *PlatformPrefs) Clone() *PlatformPrefs {
	if p == nil {
		return nil
	}
	return &PlatformPrefs{
		Common:          *p.Common.Clone(),
		Icon:            cloneField(p.Icon),
		Scale:           cloneField(p.Scale),
		InterpolatePos:  cloneField(p.InterpolatePos),
		SurfaceClamping: cloneField(p.SurfaceClamping),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *PlatformPrefs) MergeFrom(src *PlatformPrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.Icon, src.Icon)
	mergeField(&p.Scale, src.Scale)
	mergeField(&p.InterpolatePos, src.InterpolatePos)
	mergeField(&p.SurfaceClamping, src.SurfaceClamping)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *PlatformPrefs) ClearFieldsSetIn(mask *PlatformPrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.Icon, mask.Icon)
	clearField(&p.Scale, mask.Scale)
	clearField(&p.InterpolatePos, mask.InterpolatePos)
	clearField(&p.SurfaceClamping, mask.SurfaceClamping)
}

// CommonPrefs exposes the shared preference block.
func (p *PlatformPrefs) CommonPrefs() *CommonPrefs { return &p.Common }

// InterpolateEnabled reports the per-platform interpolation gate, defaulting
// to true when unset.
func (p *PlatformPrefs) InterpolateEnabled() bool {
	if p == nil || p.InterpolatePos == nil {
		return true
	}
	return *p.InterpolatePos
}

// BeamPrefs are the mutable preferences of a beam.
type BeamPrefs struct {
	Common CommonPrefs
	// VerticalWidth and HorizontalWidth are beamwidths in radians.
	VerticalWidth   *float64
	HorizontalWidth *float64
	// TargetID is the entity a target beam is slaved to.
	TargetID *ObjectID
	// AzimuthOffset and ElevationOffset bias the pointing angles, radians.
	AzimuthOffset   *float64
	ElevationOffset *float64
	// InterpolateBeamPos enables interpolation of beam angles. Treated as
	// true when unset.
	InterpolateBeamPos *bool
}

// Clone returns a deep copy.
func (p *BeamPrefs) Clone() *BeamPrefs {
	if p == nil {
		return nil
	}
	return &BeamPrefs{
		Common:             *p.Common.Clone(),
		VerticalWidth:      cloneField(p.VerticalWidth),
		HorizontalWidth:    cloneField(p.HorizontalWidth),
		TargetID:           cloneField(p.TargetID),
		AzimuthOffset:      cloneField(p.AzimuthOffset),
		ElevationOffset:    cloneField(p.ElevationOffset),
		InterpolateBeamPos: cloneField(p.InterpolateBeamPos),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *BeamPrefs) MergeFrom(src *BeamPrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.VerticalWidth, src.VerticalWidth)
	mergeField(&p.HorizontalWidth, src.HorizontalWidth)
	mergeField(&p.TargetID, src.TargetID)
	mergeField(&p.AzimuthOffset, src.AzimuthOffset)
	mergeField(&p.ElevationOffset, src.ElevationOffset)
	mergeField(&p.InterpolateBeamPos, src.InterpolateBeamPos)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *BeamPrefs) ClearFieldsSetIn(mask *BeamPrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.VerticalWidth, mask.VerticalWidth)
	clearField(&p.HorizontalWidth, mask.HorizontalWidth)
	clearField(&p.TargetID, mask.TargetID)
	clearField(&p.AzimuthOffset, mask.AzimuthOffset)
	clearField(&p.ElevationOffset, mask.ElevationOffset)
	clearField(&p.InterpolateBeamPos, mask.InterpolateBeamPos)
}

// CommonPrefs exposes the shared preference block.
func (p *BeamPrefs) CommonPrefs() *CommonPrefs { return &p.Common }

// GatePrefs are the mutable preferences of a gate.
type GatePrefs struct {
	Common CommonPrefs
	// FillPattern selects the rendered fill style.
	FillPattern *int32
	// CentroidDraw toggles drawing of the gate centroid marker.
	CentroidDraw *bool
	// InterpolateGatePos enables interpolation of gate geometry. Treated as
	// true when unset.
	InterpolateGatePos *bool
}

// Clone returns a deep copy.
func (p *GatePrefs) Clone() *GatePrefs {
	if p == nil {
		return nil
	}
	return &GatePrefs{
		Common:             *p.Common.Clone(),
		FillPattern:        cloneField(p.FillPattern),
		CentroidDraw:       cloneField(p.CentroidDraw),
		InterpolateGatePos: cloneField(p.InterpolateGatePos),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *GatePrefs) MergeFrom(src *GatePrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.FillPattern, src.FillPattern)
	mergeField(&p.CentroidDraw, src.CentroidDraw)
	mergeField(&p.InterpolateGatePos, src.InterpolateGatePos)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *GatePrefs) ClearFieldsSetIn(mask *GatePrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.FillPattern, mask.FillPattern)
	clearField(&p.CentroidDraw, mask.CentroidDraw)
	clearField(&p.InterpolateGatePos, mask.InterpolateGatePos)
}

// CommonPrefs exposes the shared preference block.
func (p *GatePrefs) CommonPrefs() *CommonPrefs { return &p.Common }

// LaserPrefs are the mutable preferences of a laser.
type LaserPrefs struct {
	Common CommonPrefs
	// Width is the rendered line width in pixels.
	Width *int32
	// AzimuthOffset and ElevationOffset bias the pointing angles, radians.
	AzimuthOffset   *float64
	ElevationOffset *float64
}

// Clone returns a deep copy.
func (p *LaserPrefs) Clone() *LaserPrefs {
	if p == nil {
		return nil
	}
	return &LaserPrefs{
		Common:          *p.Common.Clone(),
		Width:           cloneField(p.Width),
		AzimuthOffset:   cloneField(p.AzimuthOffset),
		ElevationOffset: cloneField(p.ElevationOffset),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *LaserPrefs) MergeFrom(src *LaserPrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.Width, src.Width)
	mergeField(&p.AzimuthOffset, src.AzimuthOffset)
	mergeField(&p.ElevationOffset, src.ElevationOffset)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *LaserPrefs) ClearFieldsSetIn(mask *LaserPrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.Width, mask.Width)
	clearField(&p.AzimuthOffset, mask.AzimuthOffset)
	clearField(&p.ElevationOffset, mask.ElevationOffset)
}

// CommonPrefs exposes the shared preference block.
func (p *LaserPrefs) CommonPrefs() *CommonPrefs { return &p.Common }

// ProjectorPrefs are the mutable preferences of a projector.
type ProjectorPrefs struct {
	Common CommonPrefs
	// ShadowMapping enables shadow casting for the projected image.
	ShadowMapping *bool
	// InterpolateFOV enables interpolation of the field of view. Treated as
	// true when unset.
	InterpolateFOV *bool
}

// Clone returns a deep copy.
func (p *ProjectorPrefs) Clone() *ProjectorPrefs {
	if p == nil {
		return nil
	}
	return &ProjectorPrefs{
		Common:         *p.Common.Clone(),
		ShadowMapping:  cloneField(p.ShadowMapping),
		InterpolateFOV: cloneField(p.InterpolateFOV),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *ProjectorPrefs) MergeFrom(src *ProjectorPrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.ShadowMapping, src.ShadowMapping)
	mergeField(&p.InterpolateFOV, src.InterpolateFOV)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *ProjectorPrefs) ClearFieldsSetIn(mask *ProjectorPrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.ShadowMapping, mask.ShadowMapping)
	clearField(&p.InterpolateFOV, mask.InterpolateFOV)
}

// CommonPrefs exposes the shared preference block.
func (p *ProjectorPrefs) CommonPrefs() *CommonPrefs { return &p.Common }

// LOBGroupPrefs are the mutable preferences of a line-of-bearing group.
type LOBGroupPrefs struct {
	Common CommonPrefs
	// MaxDataPoints caps the bearings retained per group.
	MaxDataPoints *uint32
	// MaxDataSeconds caps retained bearings to a trailing time window.
	MaxDataSeconds *float64
	// LOBWidth is the rendered line width in pixels.
	LOBWidth *int32
}

// Clone returns a deep copy.
func (p *LOBGroupPrefs) Clone() *LOBGroupPrefs {
	if p == nil {
		return nil
	}
	return &LOBGroupPrefs{
		Common:         *p.Common.Clone(),
		MaxDataPoints:  cloneField(p.MaxDataPoints),
		MaxDataSeconds: cloneField(p.MaxDataSeconds),
		LOBWidth:       cloneField(p.LOBWidth),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *LOBGroupPrefs) MergeFrom(src *LOBGroupPrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.MaxDataPoints, src.MaxDataPoints)
	mergeField(&p.MaxDataSeconds, src.MaxDataSeconds)
	mergeField(&p.LOBWidth, src.LOBWidth)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *LOBGroupPrefs) ClearFieldsSetIn(mask *LOBGroupPrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.MaxDataPoints, mask.MaxDataPoints)
	clearField(&p.MaxDataSeconds, mask.MaxDataSeconds)
	clearField(&p.LOBWidth, mask.LOBWidth)
}

// CommonPrefs exposes the shared preference block.
func (p *LOBGroupPrefs) CommonPrefs() *CommonPrefs { return &p.Common }

// CustomRenderingPrefs are the mutable preferences of a custom rendering
// entity.
type CustomRenderingPrefs struct {
	Common CommonPrefs
	// Persistence is how long rendered data remains visible, seconds.
	Persistence *float64
}

// Clone returns a deep copy.
func (p *CustomRenderingPrefs) Clone() *CustomRenderingPrefs {
	if p == nil {
		return nil
	}
	return &CustomRenderingPrefs{
		Common:      *p.Common.Clone(),
		Persistence: cloneField(p.Persistence),
	}
}

// MergeFrom overwrites each field that is set in src.
func (p *CustomRenderingPrefs) MergeFrom(src *CustomRenderingPrefs) {
	if src == nil {
		return
	}
	p.Common.MergeFrom(&src.Common)
	mergeField(&p.Persistence, src.Persistence)
}

// ClearFieldsSetIn unsets each field that is set in mask.
func (p *CustomRenderingPrefs) ClearFieldsSetIn(mask *CustomRenderingPrefs) {
	if mask == nil {
		return
	}
	p.Common.ClearFieldsSetIn(&mask.Common)
	clearField(&p.Persistence, mask.Persistence)
}

// CommonPrefs exposes the shared preference block.
func (p *CustomRenderingPrefs) CommonPrefs() *CommonPrefs { return &p.Common }
