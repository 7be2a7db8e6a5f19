package scene

import (
	"image"
	"image/color"
	"testing"
)

func TestBoxGeometryFaceOrder(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)

	if len(g.Groups) != FaceCount {
		t.Fatalf("expected %d groups, got %d", FaceCount, len(g.Groups))
	}
	for i, grp := range g.Groups {
		if grp.MaterialIndex != i {
			t.Errorf("group %d bound to material %d", i, grp.MaterialIndex)
		}
		want := Face(i).Normal()
		for tri := grp.Start / 3; tri < (grp.Start+grp.Count)/3; tri++ {
			a, b, c := g.Triangle(tri)
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			if n.Dot(want) < 0.999 {
				t.Errorf("face %s triangle %d normal %v, want outward %v", Face(i), tri, n, want)
			}
			// Every corner lies on the face plane at distance 1.
			for _, p := range []struct{ x, y, z float32 }{{a.X, a.Y, a.Z}, {b.X, b.Y, b.Z}, {c.X, c.Y, c.Z}} {
				d := p.x*want.X + p.y*want.Y + p.z*want.Z
				if d < 0.999 || d > 1.001 {
					t.Errorf("face %s corner off plane: %v", Face(i), p)
				}
			}
		}
	}
}

func TestBoxGeometryUVsTopRowFirst(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)
	// On the +z face the vertex with the highest Y must sample the top image row (v=0).
	grp := g.Groups[FacePosZ]
	for i := grp.Start; i < grp.Start+grp.Count; i++ {
		idx := g.Indices[i]
		y := g.Positions[idx*3+1]
		v := g.UVs[idx*2+1]
		if y > 0 && v != 0 {
			t.Errorf("top vertex has v=%v, want 0", v)
		}
		if y < 0 && v != 1 {
			t.Errorf("bottom vertex has v=%v, want 1", v)
		}
	}
}

func TestBoxGeometryBounds(t *testing.T) {
	g := NewBoxGeometry(2, 4, 6)
	min, max := g.BoundingBox()
	if min.X != -1 || min.Y != -2 || min.Z != -3 {
		t.Errorf("min = %v", min)
	}
	if max.X != 1 || max.Y != 2 || max.Z != 3 {
		t.Errorf("max = %v", max)
	}
	if g.VertexCount() != 24 || g.TriangleCount() != 12 {
		t.Errorf("got %d vertices / %d triangles, want 24 / 12", g.VertexCount(), g.TriangleCount())
	}
	if len(g.Interleaved()) != 24*8 {
		t.Errorf("interleaved length %d", len(g.Interleaved()))
	}
}

func TestDisposeRunsHooksOnce(t *testing.T) {
	tex := NewTexture("t", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	calls := 0
	tex.OnDispose(func() { calls++ })

	tex.Dispose()
	tex.Dispose()

	if !tex.Disposed() {
		t.Error("texture should report disposed")
	}
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}

	late := 0
	tex.OnDispose(func() { late++ })
	if late != 1 {
		t.Error("hook registered after dispose should run immediately")
	}
}

func TestMeshMaterialFor(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)
	shell := NewColorMaterial("shell", color.RGBA{255, 255, 255, 255}, BackSide)
	outline := NewMesh("outline", g, shell)
	for _, grp := range g.Groups {
		if outline.MaterialFor(grp) != shell {
			t.Fatal("single material should cover every group")
		}
	}

	mats := make([]*Material, FaceCount)
	for i := range mats {
		mats[i] = NewBasicMaterial(Face(i).String(), nil)
	}
	cube := NewMesh("cube", g, mats...)
	for i, grp := range g.Groups {
		if cube.MaterialFor(grp) != mats[i] {
			t.Errorf("group %d resolved to wrong material", i)
		}
	}
}

func TestSceneAddRemove(t *testing.T) {
	s := New()
	g := NewBoxGeometry(2, 2, 2)
	a := NewMesh("a", g)
	b := NewMesh("b", g)

	s.Add(a, b, a)
	if len(s.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(s.Children()))
	}
	if !s.Remove(a) {
		t.Error("Remove(a) should succeed")
	}
	if s.Remove(a) {
		t.Error("second Remove(a) should report false")
	}
	if s.Contains(a) || !s.Contains(b) {
		t.Error("unexpected scene contents after remove")
	}
}

func TestFaceString(t *testing.T) {
	if FaceNegZ.String() != "-z" {
		t.Errorf("FaceNegZ = %q", FaceNegZ.String())
	}
	if Face(9).String() != "Face(9)" {
		t.Errorf("out of range face = %q", Face(9).String())
	}
}
