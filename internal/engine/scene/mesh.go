package scene

import "github.com/kxrai/alicia-3d-website/pkg/math"

// Mesh places a geometry in the scene with one material per geometry group.
// A single material is reused for every group.
type Mesh struct {
	Name      string
	Geometry  *Geometry
	Materials []*Material

	Position math.Vec3
	Rotation math.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    math.Vec3
}

// NewMesh creates a mesh at the origin with unit scale.
func NewMesh(name string, geometry *Geometry, materials ...*Material) *Mesh {
	return &Mesh{
		Name:      name,
		Geometry:  geometry,
		Materials: materials,
		Scale:     math.V3(1, 1, 1),
	}
}

// SetUniformScale scales the mesh by s on every axis.
func (m *Mesh) SetUniformScale(s float32) {
	m.Scale = math.V3(s, s, s)
}

// ModelMatrix returns the local-to-world transform.
func (m *Mesh) ModelMatrix() math.Mat4 {
	return math.Compose(m.Position, m.Rotation, m.Scale)
}

// MaterialFor returns the material drawn for a geometry group.
func (m *Mesh) MaterialFor(g Group) *Material {
	if len(m.Materials) == 0 {
		return nil
	}
	if len(m.Materials) == 1 {
		return m.Materials[0]
	}
	if g.MaterialIndex < 0 || g.MaterialIndex >= len(m.Materials) {
		return nil
	}
	return m.Materials[g.MaterialIndex]
}
