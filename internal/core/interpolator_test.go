package core

import (
	"math"
	"testing"

	"trackstore/pkg/domain"
	"trackstore/pkg/geodesy"
)

func TestLinearInterpolatorPlatformMidpoint(t *testing.T) {
	li := NewLinearInterpolator()
	a := &domain.PlatformUpdate{
		Time:     0,
		Position: geodesy.GeodeticToECEF(geodesy.LLA{Lat: 0.5, Lon: 1.0, Alt: 1000}),
	}
	b := &domain.PlatformUpdate{
		Time:     10,
		Position: geodesy.GeodeticToECEF(geodesy.LLA{Lat: 0.5, Lon: 1.001, Alt: 3000}),
	}

	got := li.InterpolatePlatform(a, b, 5)
	if got.Time != 5 {
		t.Fatalf("expected t=5, got %v", got.Time)
	}
	lla := geodesy.ECEFToGeodetic(got.Position)
	// Altitude blends geodetically, so the midpoint altitude is exact even
	// though the position blend runs through the earth-fixed frame.
	if math.Abs(lla.Alt-2000) > 0.01 {
		t.Fatalf("expected midpoint altitude 2000, got %v", lla.Alt)
	}
	if math.Abs(lla.Lon-1.0005) > 1e-6 {
		t.Fatalf("expected midpoint longitude, got %v", lla.Lon)
	}
}

func TestLinearInterpolatorPlatformOptionalFields(t *testing.T) {
	li := NewLinearInterpolator()
	pos := geodesy.GeodeticToECEF(geodesy.LLA{Lat: 0, Lon: 0, Alt: 0})
	a := &domain.PlatformUpdate{Time: 0, Position: pos, Velocity: &geodesy.Vec3{X: 10}}
	b := &domain.PlatformUpdate{Time: 2, Position: pos}

	got := li.InterpolatePlatform(a, b, 1)
	if got.Velocity != nil {
		t.Fatalf("velocity must be omitted unless both endpoints carry it")
	}
	if got.Orientation != nil {
		t.Fatalf("orientation must be omitted unless both endpoints carry it")
	}

	b.Velocity = &geodesy.Vec3{X: 20}
	got = li.InterpolatePlatform(a, b, 1)
	if got.Velocity == nil || got.Velocity.X != 15 {
		t.Fatalf("expected blended velocity 15, got %+v", got.Velocity)
	}
}

func TestLinearInterpolatorBeamWrapsAroundNorth(t *testing.T) {
	li := NewLinearInterpolator()
	deg := func(d float64) float64 { return d * math.Pi / 180 }
	a := &domain.BeamUpdate{Time: 0, Azimuth: deg(359), Range: 100}
	b := &domain.BeamUpdate{Time: 2, Azimuth: deg(1), Range: 200}

	got := li.InterpolateBeam(a, b, 1)
	if math.Abs(geodesy.AngFix2PI(got.Azimuth)) > 1e-9 {
		t.Fatalf("azimuth should cross the seam to 0, got %v deg", got.Azimuth*180/math.Pi)
	}
	if got.Range != 150 {
		t.Fatalf("expected range 150, got %v", got.Range)
	}
}

func TestLinearInterpolatorGateSentinelWidth(t *testing.T) {
	li := NewLinearInterpolator()
	a := &domain.GateUpdate{Time: 0, Width: 0, Height: 0.2}
	b := &domain.GateUpdate{Time: 2, Width: 0.4, Height: 0.4}

	got := li.InterpolateGate(a, b, 1)
	if got.Width != 0 {
		t.Fatalf("non-positive width defers to the host and must not blend, got %v", got.Width)
	}
	if math.Abs(got.Height-0.3) > 1e-12 {
		t.Fatalf("expected blended height 0.3, got %v", got.Height)
	}
}

func TestLinearInterpolatorProjectorSentinelHFOV(t *testing.T) {
	li := NewLinearInterpolator()
	a := &domain.ProjectorUpdate{Time: 0, FOV: 0.2, HFOV: 0}
	b := &domain.ProjectorUpdate{Time: 2, FOV: 0.4, HFOV: 0.5}

	got := li.InterpolateProjector(a, b, 1)
	if got.HFOV != 0 {
		t.Fatalf("sentinel HFOV must copy the earlier endpoint, got %v", got.HFOV)
	}
	if math.Abs(got.FOV-0.3) > 1e-12 {
		t.Fatalf("expected blended FOV 0.3, got %v", got.FOV)
	}
}

func TestLinearInterpolatorLaserNormalization(t *testing.T) {
	li := NewLinearInterpolator()
	a := &domain.LaserUpdate{Time: 0, Orientation: geodesy.Vec3{X: -0.1, Y: 0.1, Z: 0}}
	b := &domain.LaserUpdate{Time: 2, Orientation: geodesy.Vec3{X: 0.1, Y: 0.3, Z: 0}}

	got := li.InterpolateLaser(a, b, 1)
	if math.Abs(geodesy.AngFix2PI(got.Orientation.X)) > 1e-9 {
		t.Fatalf("yaw should blend through 0, got %v", got.Orientation.X)
	}
	if got.Orientation.X < 0 || got.Orientation.X >= geodesy.TwoPi {
		t.Fatalf("yaw must land in [0, 2pi), got %v", got.Orientation.X)
	}
	if math.Abs(got.Orientation.Y-0.2) > 1e-12 {
		t.Fatalf("expected pitch 0.2, got %v", got.Orientation.Y)
	}
}

func TestNearestNeighborTiePrefersEarlier(t *testing.T) {
	nn := NewNearestNeighborInterpolator()
	a := &domain.BeamUpdate{Time: 0, Range: 100}
	b := &domain.BeamUpdate{Time: 2, Range: 200}

	got := nn.InterpolateBeam(a, b, 1)
	if got.Range != 100 {
		t.Fatalf("tie must snap to the earlier sample, got range %v", got.Range)
	}
	if got.Time != 1 {
		t.Fatalf("synthesized record should carry the query time, got %v", got.Time)
	}

	got = nn.InterpolateBeam(a, b, 1.5)
	if got.Range != 200 {
		t.Fatalf("closer-to-later should snap to later, got range %v", got.Range)
	}
}
