// Package picking provides ray casting and object picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// Rect is the drawing surface's placement in window coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the window point lies on the surface.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// NDC converts a window point to normalized device coordinates of the
// surface: x in [-1, 1] left to right, y in [-1, 1] bottom to top.
func NDC(x, y float32, surface Rect) (nx, ny float32) {
	nx = ((x-surface.X)/surface.Width)*2 - 1
	ny = -((y-surface.Y)/surface.Height)*2 + 1
	return nx, ny
}

// RayFromNDC casts a ray from the camera position through a point in
// normalized device coordinates. invViewProj is the inverse of the camera's
// view-projection matrix.
func RayFromNDC(nx, ny float32, eye math.Vec3, invViewProj math.Mat4) Ray {
	// Unproject a point on the far plane and aim at it from the eye.
	far := invViewProj.MulVec4(math.Vec4{nx, ny, 1.0, 1.0})
	if far[3] != 0 {
		far[0] /= far[3]
		far[1] /= far[3]
		far[2] /= far[3]
	}

	dir := math.V3(far[0], far[1], far[2]).Sub(eye).Normalize()
	return Ray{Origin: eye.Array(), Direction: dir.Array()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return math.FromArray(r.Origin).Add(math.FromArray(r.Direction).Scale(t))
}

// Transform maps the ray through m. The direction is not renormalized so
// distances along the transformed ray keep the parameterization of r.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction),
	}
}

// IntersectTriangle tests the ray against triangle (a, b, c) using the
// Moller-Trumbore method. With cullBack set, only triangles whose
// counter-clockwise front faces the ray origin can be hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3, cullBack bool) (t float32, hit bool) {
	const eps = 1e-7

	dir := math.FromArray(r.Direction)
	orig := math.FromArray(r.Origin)

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)

	if cullBack && dir.Dot(edge1.Cross(edge2)) >= 0 {
		return 0, false
	}

	p := dir.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false // Ray parallel to triangle
	}
	inv := 1 / det

	s := orig.Sub(a)
	u := s.Dot(p) * inv
	if u < -eps || u > 1+eps {
		return 0, false
	}

	q := s.Cross(edge1)
	v := dir.Dot(q) * inv
	if v < -eps || u+v > 1+eps {
		return 0, false
	}

	t = edge2.Dot(q) * inv
	if t < 0 {
		return 0, false // Behind the origin
	}
	return t, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] != 0 {
			t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
			t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
			return 0, false
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates an AABB from min and max corners, handling negative scales.
func NewAABB(min, max math.Vec3) AABB {
	box := AABB{
		Min: min.Array(),
		Max: max.Array(),
	}
	// Ensure min < max for each axis
	for axis := 0; axis < 3; axis++ {
		if box.Min[axis] > box.Max[axis] {
			box.Min[axis], box.Max[axis] = box.Max[axis], box.Min[axis]
		}
	}
	return box
}
