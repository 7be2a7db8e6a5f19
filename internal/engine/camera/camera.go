// Package camera provides the perspective camera and the damped orbit
// controller that moves it.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// PerspectiveCamera looks from Position toward Target.
type PerspectiveCamera struct {
	FovY   float32 // Vertical field of view in degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fovY, aspect, near, far float32) *PerspectiveCamera {
	if aspect <= 0 {
		aspect = 1
	}
	return &PerspectiveCamera{
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.V3(0, 0, -1),
		Up:     math.V3(0, 1, 0),
	}
}

// SetPosition moves the camera without changing its target.
func (c *PerspectiveCamera) SetPosition(x, y, z float32) {
	c.Position = math.V3(x, y, z)
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target math.Vec3) {
	c.Target = target
}

// ViewMatrix returns the view matrix for this camera.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
