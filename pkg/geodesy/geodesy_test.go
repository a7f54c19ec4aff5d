package geodesy

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestFactor(t *testing.T) {
	if got := Factor(0, 5, 10); got != 0.5 {
		t.Fatalf("Factor(0,5,10) = %v, want 0.5", got)
	}
	if got := Factor(0, -1, 10); got != 0 {
		t.Fatalf("Factor clamps below, got %v", got)
	}
	if got := Factor(0, 11, 10); got != 1 {
		t.Fatalf("Factor clamps above, got %v", got)
	}
	if got := Factor(5, 7, 5); got != 0 {
		t.Fatalf("degenerate interval should yield 0, got %v", got)
	}
}

func TestAngFixPI(t *testing.T) {
	if got := AngFixPI(3 * math.Pi / 2); !approx(got, -math.Pi/2, 1e-12) {
		t.Fatalf("AngFixPI(3pi/2) = %v, want -pi/2", got)
	}
	if got := AngFixPI(math.Pi); got != math.Pi {
		t.Fatalf("pi is in range, got %v", got)
	}
	if got := AngFixPI(-math.Pi); got != math.Pi {
		t.Fatalf("-pi normalizes to pi, got %v", got)
	}
}

func TestAngFix2PI(t *testing.T) {
	if got := AngFix2PI(-math.Pi / 2); !approx(got, 3*math.Pi/2, 1e-12) {
		t.Fatalf("AngFix2PI(-pi/2) = %v, want 3pi/2", got)
	}
	if got := AngFix2PI(TwoPi); got != 0 {
		t.Fatalf("2pi normalizes to 0, got %v", got)
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	deg := func(d float64) float64 { return d * math.Pi / 180 }

	// 359 -> 1 degrees must pass through 0, not backward through 180.
	got := LerpAngle(deg(359), deg(1), 0.5)
	if !approx(AngFix2PI(got), 0, 1e-9) {
		t.Fatalf("LerpAngle(359deg, 1deg, 0.5) = %v deg, want 0", got*180/math.Pi)
	}

	// 1 -> 359 also crosses the seam.
	got = LerpAngle(deg(1), deg(359), 0.5)
	if !approx(AngFix2PI(got), 0, 1e-9) {
		t.Fatalf("LerpAngle(1deg, 359deg, 0.5) = %v deg, want 0", got*180/math.Pi)
	}

	// An ordinary short arc blends directly.
	got = LerpAngle(deg(10), deg(30), 0.5)
	if !approx(got, deg(20), 1e-12) {
		t.Fatalf("LerpAngle(10deg, 30deg, 0.5) = %v deg, want 20", got*180/math.Pi)
	}
}

func TestECEFGeodeticRoundTrip(t *testing.T) {
	cases := []LLA{
		{Lat: 0, Lon: 0, Alt: 0},
		{Lat: 0.6, Lon: -2.1, Alt: 12000},
		{Lat: -1.2, Lon: 3.0, Alt: -100},
		{Lat: 1.5, Lon: 0.1, Alt: 500},
	}
	for _, want := range cases {
		got := ECEFToGeodetic(GeodeticToECEF(want))
		if !approx(got.Lat, want.Lat, 1e-9) || !approx(got.Lon, want.Lon, 1e-9) || !approx(got.Alt, want.Alt, 1e-3) {
			t.Fatalf("round trip %+v -> %+v", want, got)
		}
	}
}

func TestECEFToGeodeticPolarAxis(t *testing.T) {
	got := ECEFToGeodetic(Vec3{X: 0, Y: 0, Z: wgs84B + 1000})
	if !approx(got.Lat, math.Pi/2, 1e-12) || !approx(got.Alt, 1000, 1e-6) {
		t.Fatalf("north pole conversion off: %+v", got)
	}
	got = ECEFToGeodetic(Vec3{X: 0, Y: 0, Z: -(wgs84B + 50)})
	if !approx(got.Lat, -math.Pi/2, 1e-12) || !approx(got.Alt, 50, 1e-6) {
		t.Fatalf("south pole conversion off: %+v", got)
	}
}
