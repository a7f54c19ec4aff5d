package core

import "trackstore/pkg/geodesy"

func geoVec(x, y, z float64) geodesy.Vec3 {
	return geodesy.Vec3{X: x, Y: y, Z: z}
}

func strp(s string) *string    { return &s }
func boolp(b bool) *bool       { return &b }
func u32p(v uint32) *uint32    { return &v }
func f64p(v float64) *float64  { return &v }
