package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera on the Z axis looking toward -Z
type Camera struct {
	Z      float64
	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Viewport width/height

	viewProj mgl64.Mat4
	inverse  mgl64.Mat4
}

const (
	cameraNear = 0.1
	cameraFar  = 1000.0
)

// NewCamera builds the view-projection for the given placement
func NewCamera(z, fov, aspect float64) Camera {
	c := Camera{Z: z, FOV: fov, Aspect: aspect}
	if c.Aspect <= 0 || math.IsNaN(c.Aspect) {
		c.Aspect = 1
	}
	eye := Vec3{0, 0, c.Z}
	view := mgl64.LookAtV(eye, eye.Add(Forward), Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, cameraNear, cameraFar)
	c.viewProj = proj.Mul4(view)
	c.inverse = c.viewProj.Inv()
	return c
}

// Project maps a world point to normalized device coordinates
// ok is false for points at or behind the camera plane
func (c Camera) Project(p Vec3) (nx, ny, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, 0, false
	}
	return clip[0] / clip[3], clip[1] / clip[3], clip[3], true
}

// Unproject casts a ray through NDC (nx, ny) and returns its intersection with the plane z = planeZ
func (c Camera) Unproject(nx, ny, planeZ float64) Vec3 {
	near := c.inverse.Mul4x1(mgl64.Vec4{nx, ny, -1, 1})
	far := c.inverse.Mul4x1(mgl64.Vec4{nx, ny, 1, 1})
	a := near.Vec3().Mul(1 / near[3])
	b := far.Vec3().Mul(1 / far[3])

	dir := b.Sub(a)
	if dir[2] == 0 {
		return Vec3{a[0], a[1], planeZ}
	}
	t := (planeZ - a[2]) / dir[2]
	return a.Add(dir.Mul(t))
}
