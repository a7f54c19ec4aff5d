package core

import (
	"trackstore/pkg/domain"
	"trackstore/pkg/geodesy"
)

// Interpolator produces a synthetic update for a time between two stored
// samples, with earlier.Time <= t <= later.Time. LOB groups and custom
// rendering entities are never interpolated, so no methods exist for them.
type Interpolator interface {
	InterpolatePlatform(earlier, later *domain.PlatformUpdate, t float64) *domain.PlatformUpdate
	InterpolateBeam(earlier, later *domain.BeamUpdate, t float64) *domain.BeamUpdate
	InterpolateGate(earlier, later *domain.GateUpdate, t float64) *domain.GateUpdate
	InterpolateLaser(earlier, later *domain.LaserUpdate, t float64) *domain.LaserUpdate
	InterpolateProjector(earlier, later *domain.ProjectorUpdate, t float64) *domain.ProjectorUpdate
}

// LinearInterpolator blends linearly in time. Positions blend in the
// earth-fixed frame, with the altitude component re-blended geodetically so
// long segments do not cut through the earth. Angles blend along the
// shortest arc.
type LinearInterpolator struct{}

// NewLinearInterpolator returns a LinearInterpolator.
func NewLinearInterpolator() *LinearInterpolator { return &LinearInterpolator{} }

func (LinearInterpolator) InterpolatePlatform(earlier, later *domain.PlatformUpdate, t float64) *domain.PlatformUpdate {
	f := geodesy.Factor(earlier.Time, t, later.Time)

	prevLLA := geodesy.ECEFToGeodetic(earlier.Position)
	nextLLA := geodesy.ECEFToGeodetic(later.Position)

	// Blend in ECEF so north/south and east/west transitions come out
	// right, then override altitude with the geodetic blend.
	chord := geodesy.ECEFToGeodetic(geodesy.Vec3{
		X: geodesy.Lerp(earlier.Position.X, later.Position.X, f),
		Y: geodesy.Lerp(earlier.Position.Y, later.Position.Y, f),
		Z: geodesy.Lerp(earlier.Position.Z, later.Position.Z, f),
	})
	out := &domain.PlatformUpdate{
		Time: t,
		Position: geodesy.GeodeticToECEF(geodesy.LLA{
			Lat: chord.Lat,
			Lon: chord.Lon,
			Alt: geodesy.Lerp(prevLLA.Alt, nextLLA.Alt, f),
		}),
	}

	if earlier.Orientation != nil && later.Orientation != nil {
		out.Orientation = &geodesy.Vec3{
			X: geodesy.LerpAngle(earlier.Orientation.X, later.Orientation.X, f),
			Y: geodesy.LerpAngle(earlier.Orientation.Y, later.Orientation.Y, f),
			Z: geodesy.LerpAngle(earlier.Orientation.Z, later.Orientation.Z, f),
		}
	}
	if earlier.Velocity != nil && later.Velocity != nil {
		out.Velocity = &geodesy.Vec3{
			X: geodesy.Lerp(earlier.Velocity.X, later.Velocity.X, f),
			Y: geodesy.Lerp(earlier.Velocity.Y, later.Velocity.Y, f),
			Z: geodesy.Lerp(earlier.Velocity.Z, later.Velocity.Z, f),
		}
	}
	return out
}

func (LinearInterpolator) InterpolateBeam(earlier, later *domain.BeamUpdate, t float64) *domain.BeamUpdate {
	f := geodesy.Factor(earlier.Time, t, later.Time)
	return &domain.BeamUpdate{
		Time:      t,
		Azimuth:   geodesy.LerpAngle(earlier.Azimuth, later.Azimuth, f),
		Elevation: geodesy.AngFixPI(geodesy.LerpAngle(earlier.Elevation, later.Elevation, f)),
		Range:     geodesy.Lerp(earlier.Range, later.Range, f),
	}
}

func (LinearInterpolator) InterpolateGate(earlier, later *domain.GateUpdate, t float64) *domain.GateUpdate {
	f := geodesy.Factor(earlier.Time, t, later.Time)
	out := &domain.GateUpdate{
		Time:      t,
		Azimuth:   geodesy.LerpAngle(earlier.Azimuth, later.Azimuth, f),
		Elevation: geodesy.AngFixPI(geodesy.LerpAngle(earlier.Elevation, later.Elevation, f)),
		Centroid:  geodesy.Lerp(earlier.Centroid, later.Centroid, f),
		MinRange:  geodesy.Lerp(earlier.MinRange, later.MinRange, f),
		MaxRange:  geodesy.Lerp(earlier.MaxRange, later.MaxRange, f),
	}
	// Width or height at or below zero defers to the host beam's width, so
	// a blend against it would be meaningless.
	if earlier.Width <= 0 || later.Width <= 0 {
		out.Width = earlier.Width
	} else {
		out.Width = geodesy.Lerp(earlier.Width, later.Width, f)
	}
	if earlier.Height <= 0 || later.Height <= 0 {
		out.Height = earlier.Height
	} else {
		out.Height = geodesy.Lerp(earlier.Height, later.Height, f)
	}
	return out
}

func (LinearInterpolator) InterpolateLaser(earlier, later *domain.LaserUpdate, t float64) *domain.LaserUpdate {
	f := geodesy.Factor(earlier.Time, t, later.Time)
	return &domain.LaserUpdate{
		Time: t,
		Orientation: geodesy.Vec3{
			X: geodesy.AngFix2PI(geodesy.LerpAngle(earlier.Orientation.X, later.Orientation.X, f)),
			Y: geodesy.AngFixPI(geodesy.LerpAngle(earlier.Orientation.Y, later.Orientation.Y, f)),
			Z: geodesy.AngFixPI(geodesy.LerpAngle(earlier.Orientation.Z, later.Orientation.Z, f)),
		},
	}
}

func (LinearInterpolator) InterpolateProjector(earlier, later *domain.ProjectorUpdate, t float64) *domain.ProjectorUpdate {
	f := geodesy.Factor(earlier.Time, t, later.Time)
	out := &domain.ProjectorUpdate{
		Time: t,
		FOV:  geodesy.Lerp(earlier.FOV, later.FOV, f),
	}
	// HFOV at or below zero means "use the image aspect ratio"; never blend
	// between that and a manual value.
	if earlier.HFOV > 0 && later.HFOV > 0 {
		out.HFOV = geodesy.Lerp(earlier.HFOV, later.HFOV, f)
	} else {
		out.HFOV = earlier.HFOV
	}
	return out
}

// NearestNeighborInterpolator snaps to whichever bracketing sample is
// closer in time, preferring the earlier one on a tie.
type NearestNeighborInterpolator struct{}

// NewNearestNeighborInterpolator returns a NearestNeighborInterpolator.
func NewNearestNeighborInterpolator() *NearestNeighborInterpolator {
	return &NearestNeighborInterpolator{}
}

func nearest[T timedPtr](earlier, later T, t float64) T {
	if t-earlier.Timestamp() <= later.Timestamp()-t {
		return earlier
	}
	return later
}

func (NearestNeighborInterpolator) InterpolatePlatform(earlier, later *domain.PlatformUpdate, t float64) *domain.PlatformUpdate {
	out := nearest(earlier, later, t).Clone()
	out.Time = t
	return out
}

func (NearestNeighborInterpolator) InterpolateBeam(earlier, later *domain.BeamUpdate, t float64) *domain.BeamUpdate {
	out := nearest(earlier, later, t).Clone()
	out.Time = t
	return out
}

func (NearestNeighborInterpolator) InterpolateGate(earlier, later *domain.GateUpdate, t float64) *domain.GateUpdate {
	out := nearest(earlier, later, t).Clone()
	out.Time = t
	return out
}

func (NearestNeighborInterpolator) InterpolateLaser(earlier, later *domain.LaserUpdate, t float64) *domain.LaserUpdate {
	out := nearest(earlier, later, t).Clone()
	out.Time = t
	return out
}

func (NearestNeighborInterpolator) InterpolateProjector(earlier, later *domain.ProjectorUpdate, t float64) *domain.ProjectorUpdate {
	out := nearest(earlier, later, t).Clone()
	out.Time = t
	return out
}
