package scene

import (
	"fmt"

	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// Face identifies one side of a box. The order matches the renderer's
// material slots: +X, -X, +Y, -Y, +Z, -Z.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// FaceCount is the number of faces on a box.
const FaceCount = 6

var faceNames = [FaceCount]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// faceBasis holds the outward normal and the in-plane right/up axes of a
// face as seen from outside the box. right x up == normal.
type faceBasis struct {
	normal, right, up math.Vec3
}

var boxFaces = [FaceCount]faceBasis{
	FacePosX: {normal: math.V3(1, 0, 0), right: math.V3(0, 0, -1), up: math.V3(0, 1, 0)},
	FaceNegX: {normal: math.V3(-1, 0, 0), right: math.V3(0, 0, 1), up: math.V3(0, 1, 0)},
	FacePosY: {normal: math.V3(0, 1, 0), right: math.V3(1, 0, 0), up: math.V3(0, 0, -1)},
	FaceNegY: {normal: math.V3(0, -1, 0), right: math.V3(1, 0, 0), up: math.V3(0, 0, 1)},
	FacePosZ: {normal: math.V3(0, 0, 1), right: math.V3(1, 0, 0), up: math.V3(0, 1, 0)},
	FaceNegZ: {normal: math.V3(0, 0, -1), right: math.V3(-1, 0, 0), up: math.V3(0, 1, 0)},
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() math.Vec3 {
	return boxFaces[f].normal
}

// Group is a contiguous index range drawn with one material slot.
type Group struct {
	Start         int // First index
	Count         int // Number of indices
	MaterialIndex int
}

// Geometry is an indexed triangle mesh with per-vertex normals and UVs.
// Triangles wind counter-clockwise when seen from their front side.
type Geometry struct {
	resource

	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	UVs       []float32 // uv per vertex, v=0 at the top image row
	Indices   []uint32
	Groups    []Group

	min, max math.Vec3
}

// NewBoxGeometry creates a box centered on the origin with one group per
// face in Face order.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	g := &Geometry{
		Positions: make([]float32, 0, FaceCount*4*3),
		Normals:   make([]float32, 0, FaceCount*4*3),
		UVs:       make([]float32, 0, FaceCount*4*2),
		Indices:   make([]uint32, 0, FaceCount*6),
		Groups:    make([]Group, 0, FaceCount),
	}
	half := math.V3(width/2, height/2, depth/2)

	for f := Face(0); f < FaceCount; f++ {
		b := boxFaces[f]
		center := mulComponents(b.normal, half)
		right := mulComponents(b.right, half)
		up := mulComponents(b.up, half)

		corners := [4]math.Vec3{
			center.Sub(right).Sub(up), // bottom-left
			center.Add(right).Sub(up), // bottom-right
			center.Add(right).Add(up), // top-right
			center.Sub(right).Add(up), // top-left
		}
		uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

		base := uint32(len(g.Positions) / 3)
		for i, c := range corners {
			g.Positions = append(g.Positions, c.X, c.Y, c.Z)
			g.Normals = append(g.Normals, b.normal.X, b.normal.Y, b.normal.Z)
			g.UVs = append(g.UVs, uvs[i][0], uvs[i][1])
		}

		start := len(g.Indices)
		g.Indices = append(g.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
		g.Groups = append(g.Groups, Group{Start: start, Count: 6, MaterialIndex: int(f)})
	}

	g.min = half.Scale(-1)
	g.max = half
	return g
}

func mulComponents(a, b math.Vec3) math.Vec3 {
	return math.V3(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i uint32) math.Vec3 {
	return math.V3(g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2])
}

// Triangle returns the corners of triangle i in local space.
func (g *Geometry) Triangle(i int) (a, b, c math.Vec3) {
	return g.Vertex(g.Indices[i*3]), g.Vertex(g.Indices[i*3+1]), g.Vertex(g.Indices[i*3+2])
}

// BoundingBox returns the local-space bounds.
func (g *Geometry) BoundingBox() (min, max math.Vec3) {
	return g.min, g.max
}

// Interleaved returns vertex data as position(3) normal(3) uv(2) per vertex.
func (g *Geometry) Interleaved() []float32 {
	n := g.VertexCount()
	out := make([]float32, 0, n*8)
	for i := 0; i < n; i++ {
		out = append(out,
			g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2],
			g.Normals[i*3], g.Normals[i*3+1], g.Normals[i*3+2],
			g.UVs[i*2], g.UVs[i*2+1],
		)
	}
	return out
}
