package vmath

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the world-space vector used by every simulation payload
// Axis convention: +X right, +Y up, -Z ahead of the player
type Vec3 = mgl64.Vec3

// Forward is the direction of flight
var Forward = Vec3{0, 0, -1}

// Normalize returns the unit vector of v
// Zero vector stays zero instead of producing NaN
func Normalize(v Vec3) Vec3 {
	mag := v.Len()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// LerpVec interpolates every component of a toward b by t
func LerpVec(a, b Vec3, t float64) Vec3 {
	return Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// RandomIn samples a point uniformly inside the axis-aligned box [min, max]
func RandomIn(rng *rand.Rand, min, max Vec3) Vec3 {
	return Vec3{
		min[0] + rng.Float64()*(max[0]-min[0]),
		min[1] + rng.Float64()*(max[1]-min[1]),
		min[2] + rng.Float64()*(max[2]-min[2]),
	}
}

// IsFinite reports whether no component is NaN or infinite
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
