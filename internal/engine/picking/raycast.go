package picking

import (
	"sort"

	"github.com/kxrai/alicia-3d-website/internal/engine/camera"
	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// Intersection is one ray hit on a mesh.
type Intersection struct {
	Object   *scene.Mesh
	Distance float32   // World-space distance from the ray origin
	Point    math.Vec3 // World-space hit point
	Group    int       // Geometry group (face) that was hit
}

// IntersectMesh returns the nearest hit of a world-space ray on m, honoring
// each group material's side: back-side materials are only hit from inside.
func IntersectMesh(ray Ray, m *scene.Mesh) (Intersection, bool) {
	if m == nil || m.Geometry == nil {
		return Intersection{}, false
	}

	model := m.ModelMatrix()
	local := ray.Transform(model.Inverse())

	min, max := m.Geometry.BoundingBox()
	if _, ok := local.IntersectAABB(NewAABB(min, max)); !ok {
		return Intersection{}, false
	}

	origin := math.FromArray(ray.Origin)
	best := Intersection{Object: m}
	found := false

	for gi, grp := range m.Geometry.Groups {
		mat := m.MaterialFor(grp)
		if mat == nil {
			continue
		}
		for tri := grp.Start / 3; tri < (grp.Start+grp.Count)/3; tri++ {
			a, b, c := m.Geometry.Triangle(tri)

			var t float32
			var ok bool
			switch mat.Side {
			case scene.BackSide:
				t, ok = local.IntersectTriangle(c, b, a, true)
			case scene.DoubleSide:
				t, ok = local.IntersectTriangle(a, b, c, false)
			default:
				t, ok = local.IntersectTriangle(a, b, c, true)
			}
			if !ok {
				continue
			}

			point := model.TransformVec3(local.At(t))
			dist := point.Distance(origin)
			if !found || dist < best.Distance {
				best.Distance = dist
				best.Point = point
				best.Group = gi
				found = true
			}
		}
	}

	return best, found
}

// IntersectAll tests every mesh and returns the hits sorted nearest first.
func IntersectAll(ray Ray, meshes []*scene.Mesh) []Intersection {
	var hits []Intersection
	for _, m := range meshes {
		if hit, ok := IntersectMesh(ray, m); ok {
			hits = append(hits, hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Pick casts a ray from cam through the window point (x, y) and returns the
// nearest mesh hit. Points outside the surface never pick anything.
func Pick(x, y float32, surface Rect, cam *camera.PerspectiveCamera, meshes []*scene.Mesh) (Intersection, bool) {
	if surface.Width <= 0 || surface.Height <= 0 || !surface.Contains(x, y) {
		return Intersection{}, false
	}

	nx, ny := NDC(x, y, surface)
	ray := RayFromNDC(nx, ny, cam.Position, cam.ViewProjection().Inverse())

	hits := IntersectAll(ray, meshes)
	if len(hits) == 0 {
		return Intersection{}, false
	}
	return hits[0], true
}
