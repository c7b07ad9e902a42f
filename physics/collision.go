package physics

import (
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// SpheresOverlap reports whether two spheres intersect
// Touching spheres do not overlap; comparison is squared to avoid the root
func SpheresOverlap(a vmath.Vec3, ra float64, b vmath.Vec3, rb float64) bool {
	r := ra + rb
	d := a.Sub(b)
	return d.Dot(d) < r*r
}

// DepthBand is an open Z interval
type DepthBand struct {
	Far  float64
	Near float64
}

// Contains reports whether z lies strictly inside the band
func (b DepthBand) Contains(z float64) bool {
	return z > b.Far && z < b.Near
}

// OutOfVolume reports whether pos left the play volume: beyond maxDepth ahead or past ±maxLateral
func OutOfVolume(pos vmath.Vec3, maxDepth, maxLateral float64) bool {
	return pos[2] < maxDepth || pos[0] > maxLateral || pos[0] < -maxLateral ||
		pos[1] > maxLateral || pos[1] < -maxLateral
}
