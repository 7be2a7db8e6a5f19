package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
)

var errEmptyGeometry = errors.New("geometry has no triangles")

// gpuGeometry is an uploaded vertex/index buffer pair.
type gpuGeometry struct {
	vao, vbo, ebo uint32
}

// geometry returns the GPU copy of g, uploading it on first use. The copy
// is released when g is disposed or the renderer is.
func (r *Renderer) geometry(g *scene.Geometry) (*gpuGeometry, error) {
	if gg, ok := r.geometries[g]; ok {
		return gg, nil
	}
	if g == nil || len(g.Indices) == 0 {
		return nil, errEmptyGeometry
	}

	vertices := g.Interleaved()
	gg := &gpuGeometry{}

	gl.GenVertexArrays(1, &gg.vao)
	gl.BindVertexArray(gg.vao)

	gl.GenBuffers(1, &gg.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gg.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gg.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gg.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	const stride = 8 * 4
	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.geometries[g] = gg
	g.OnDispose(func() { r.releaseGeometry(g) })

	r.log.Debug("geometry uploaded",
		zap.Int("vertices", g.VertexCount()),
		zap.Int("triangles", g.TriangleCount()),
	)
	return gg, nil
}

func (r *Renderer) releaseGeometry(g *scene.Geometry) {
	gg, ok := r.geometries[g]
	if !ok {
		return
	}
	delete(r.geometries, g)
	gl.DeleteVertexArrays(1, &gg.vao)
	gl.DeleteBuffers(1, &gg.vbo)
	gl.DeleteBuffers(1, &gg.ebo)
}

// texture returns the GL texture for t, uploading it on first use. A nil
// texture samples as white.
func (r *Renderer) texture(t *scene.Texture) uint32 {
	if t == nil || t.Image == nil {
		return r.whiteTexture
	}
	if id, ok := r.textures[t]; ok {
		return id
	}

	w, h := t.Size()
	img := t.Image
	pixels := img.Pix
	if img.Stride != w*4 {
		pixels = make([]byte, 0, w*h*4)
		for y := 0; y < h; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w*4]
			pixels = append(pixels, row...)
		}
	}

	id := uploadRGBA(int32(w), int32(h), pixels)
	r.textures[t] = id
	t.OnDispose(func() { r.releaseTexture(t) })

	r.log.Debug("texture uploaded", zap.String("name", t.Name), zap.Uint32("id", id))
	return id
}

func (r *Renderer) releaseTexture(t *scene.Texture) {
	id, ok := r.textures[t]
	if !ok {
		return
	}
	delete(r.textures, t)
	gl.DeleteTextures(1, &id)
}

// uploadRGBA creates a linear-filtered texture from tightly packed RGBA rows.
// The first row is sampled at v=0.
func uploadRGBA(width, height int32, pixels []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
