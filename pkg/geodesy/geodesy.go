// Package geodesy provides the pure coordinate and angle math consumed by the
// data store's interpolation engine: earth-fixed (ECEF) to geodetic frame
// conversion on the WGS-84 ellipsoid, angle normalization, and linear blend
// helpers. The store itself performs no earth modeling.
package geodesy

import "math"

// Vec3 is a three-component vector. For positions the components are ECEF
// meters; for orientations they are yaw/pitch/roll (psi/theta/phi) radians;
// for velocities, meters per second.
type Vec3 struct {
	X, Y, Z float64
}

// LLA is a geodetic coordinate: latitude and longitude in radians, altitude
// in meters above the WGS-84 ellipsoid.
type LLA struct {
	Lat, Lon, Alt float64
}

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0          // semi-major axis, meters
	wgs84F  = 1.0 / 298.257223563 // flattening
	wgs84B  = wgs84A * (1.0 - wgs84F)
	wgs84E2 = wgs84F * (2.0 - wgs84F) // first eccentricity squared
	wgs84EP = wgs84E2 / (1.0 - wgs84E2)
)

// TwoPi is the full circle in radians.
const TwoPi = 2.0 * math.Pi

// Factor returns the blend factor for time t between t0 and t1, clamped to
// [0, 1]. A degenerate interval (t1 <= t0) yields 0.
func Factor(t0, t, t1 float64) float64 {
	if t1 <= t0 {
		return 0
	}
	f := (t - t0) / (t1 - t0)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Lerp linearly blends a and b by factor f.
func Lerp(a, b, f float64) float64 {
	return a + f*(b-a)
}

// AngFixPI normalizes an angle to (-pi, pi].
func AngFixPI(rad float64) float64 {
	a := math.Mod(rad, TwoPi)
	if a > math.Pi {
		a -= TwoPi
	} else if a <= -math.Pi {
		a += TwoPi
	}
	return a
}

// AngFix2PI normalizes an angle to [0, 2*pi).
func AngFix2PI(rad float64) float64 {
	a := math.Mod(rad, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// LerpAngle blends two angles by factor f along the shortest arc, so a
// transition across the 0/2*pi seam interpolates through the seam rather
// than backward through pi. Inputs are normalized to [0, 2*pi) first.
func LerpAngle(low, high, f float64) float64 {
	l := AngFix2PI(low)
	h := AngFix2PI(high)
	delta := h - l
	switch {
	case delta == 0:
		return l
	case math.Abs(delta) < math.Pi:
		return l + f*delta
	case delta > 0:
		return l - f*(TwoPi-delta)
	default:
		return l + f*(TwoPi+delta)
	}
}

// ECEFToGeodetic converts an earth-centered earth-fixed position to geodetic
// latitude/longitude/altitude using Bowring's closed-form approximation,
// accurate to well under a millimeter for near-earth positions.
func ECEFToGeodetic(v Vec3) LLA {
	p := math.Hypot(v.X, v.Y)
	if p == 0 {
		// On the polar axis.
		alt := math.Abs(v.Z) - wgs84B
		lat := math.Pi / 2
		if v.Z < 0 {
			lat = -lat
		}
		if v.Z == 0 {
			lat = 0
			alt = -wgs84A
		}
		return LLA{Lat: lat, Lon: 0, Alt: alt}
	}
	lon := math.Atan2(v.Y, v.X)
	theta := math.Atan2(v.Z*wgs84A, p*wgs84B)
	sinT := math.Sin(theta)
	cosT := math.Cos(theta)
	lat := math.Atan2(v.Z+wgs84EP*wgs84B*sinT*sinT*sinT, p-wgs84E2*wgs84A*cosT*cosT*cosT)
	sinLat := math.Sin(lat)
	n := wgs84A / math.Sqrt(1.0-wgs84E2*sinLat*sinLat)
	alt := p/math.Cos(lat) - n
	return LLA{Lat: lat, Lon: lon, Alt: alt}
}

// GeodeticToECEF converts a geodetic coordinate to an earth-centered
// earth-fixed position.
func GeodeticToECEF(l LLA) Vec3 {
	sinLat := math.Sin(l.Lat)
	cosLat := math.Cos(l.Lat)
	n := wgs84A / math.Sqrt(1.0-wgs84E2*sinLat*sinLat)
	return Vec3{
		X: (n + l.Alt) * cosLat * math.Cos(l.Lon),
		Y: (n + l.Alt) * cosLat * math.Sin(l.Lon),
		Z: (n*(1.0-wgs84E2) + l.Alt) * sinLat,
	}
}
