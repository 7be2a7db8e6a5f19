// Package scene holds the scene graph handed to the renderer and to picking:
// box geometry, materials, textures, meshes and lights.
package scene

import (
	"github.com/kxrai/alicia-3d-website/internal/engine/lighting"
)

// Scene is a flat list of meshes plus its lights.
type Scene struct {
	children []*Mesh

	Ambient     lighting.AmbientLight
	PointLights []lighting.PointLight
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends meshes to the scene. Meshes already present are skipped.
func (s *Scene) Add(meshes ...*Mesh) {
	for _, m := range meshes {
		if m == nil || s.Contains(m) {
			continue
		}
		s.children = append(s.children, m)
	}
}

// Remove detaches a mesh. It returns false if the mesh was not in the scene.
func (s *Scene) Remove(m *Mesh) bool {
	for i, c := range s.children {
		if c == m {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether m is attached.
func (s *Scene) Contains(m *Mesh) bool {
	for _, c := range s.children {
		if c == m {
			return true
		}
	}
	return false
}

// Children returns the attached meshes in insertion order.
func (s *Scene) Children() []*Mesh {
	return s.children
}

// AddPointLight places a point light.
func (s *Scene) AddPointLight(l lighting.PointLight) {
	s.PointLights = append(s.PointLights, l)
}
