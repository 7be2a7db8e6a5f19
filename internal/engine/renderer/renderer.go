// Package renderer draws scenes with OpenGL 4.1. The scene is rendered into
// an offscreen framebuffer and then composited over the container background
// at the surface opacity.
package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/kxrai/alicia-3d-website/internal/engine/camera"
	"github.com/kxrai/alicia-3d-website/internal/engine/framebuffer"
	"github.com/kxrai/alicia-3d-website/internal/engine/lighting"
	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
	"github.com/kxrai/alicia-3d-website/internal/engine/shader"
	"github.com/kxrai/alicia-3d-website/internal/logger"
)

// ErrDisposed is returned by Render after Dispose.
var ErrDisposed = errors.New("renderer disposed")

// Config holds renderer configuration.
type Config struct {
	Width  int // Drawable size in pixels
	Height int

	// PageBackground shows through a transparent container.
	PageBackground color.RGBA
}

// meshUniforms caches uniform locations of the mesh program.
type meshUniforms struct {
	viewProj, model            int32
	texture, color             int32
	lit, backSide              int32
	ambient                    int32
	lightCount, lightPositions int32
	lightColors, lightRanges   int32
}

// Renderer handles all OpenGL rendering for one drawing surface.
// IMPORTANT: Must be created AFTER the OpenGL context exists.
type Renderer struct {
	config Config
	log    *zap.Logger

	target *framebuffer.SceneTarget

	meshProgram uint32
	mesh        meshUniforms

	compositeProgram uint32
	locScene         int32
	locOpacity       int32
	quadVAO          uint32
	quadVBO          uint32

	whiteTexture uint32
	geometries   map[*scene.Geometry]*gpuGeometry
	textures     map[*scene.Texture]uint32
	lights       *lighting.PointLightBuffer

	opacity    float32
	background color.RGBA // Zero alpha is transparent

	disposed bool
}

// New creates a renderer drawing to the default framebuffer.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		log:        logger.Named("renderer"),
		geometries: make(map[*scene.Geometry]*gpuGeometry),
		textures:   make(map[*scene.Texture]uint32),
		lights:     lighting.NewPointLightBuffer(),
		opacity:    1,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	var err error
	r.target, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	if err := r.createPrograms(); err != nil {
		r.Dispose()
		return nil, err
	}
	r.createQuad()
	r.whiteTexture = uploadRGBA(1, 1, []byte{255, 255, 255, 255})

	return r, nil
}

func (r *Renderer) createPrograms() error {
	var err error
	r.meshProgram, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return fmt.Errorf("mesh shader: %w", err)
	}
	u := shader.Uniforms(r.meshProgram,
		"uViewProj", "uModel", "uTexture", "uColor", "uLit", "uBackSide", "uAmbient",
		"uPointLightCount", "uPointLightPositions", "uPointLightColors", "uPointLightRanges",
	)
	r.mesh = meshUniforms{
		viewProj:       u["uViewProj"],
		model:          u["uModel"],
		texture:        u["uTexture"],
		color:          u["uColor"],
		lit:            u["uLit"],
		backSide:       u["uBackSide"],
		ambient:        u["uAmbient"],
		lightCount:     u["uPointLightCount"],
		lightPositions: u["uPointLightPositions"],
		lightColors:    u["uPointLightColors"],
		lightRanges:    u["uPointLightRanges"],
	}

	r.compositeProgram, err = shader.CompileProgram(compositeVertexShader, compositeFragmentShader)
	if err != nil {
		return fmt.Errorf("composite shader: %w", err)
	}
	r.locScene = shader.GetUniform(r.compositeProgram, "uScene")
	r.locOpacity = shader.GetUniform(r.compositeProgram, "uOpacity")

	r.log.Debug("shader programs created",
		zap.Uint32("mesh", r.meshProgram),
		zap.Uint32("composite", r.compositeProgram),
	)
	return nil
}

// createQuad creates the full-screen quad used by the composite pass.
func (r *Renderer) createQuad() {
	vertices := []float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// SetPresentation sets the surface opacity and the container background.
func (r *Renderer) SetPresentation(opacity float32, background color.RGBA) {
	r.opacity = opacity
	r.background = background
}

// Render draws the scene from cam and composites it onto the window.
func (r *Renderer) Render(s *scene.Scene, cam *camera.PerspectiveCamera) error {
	if r.disposed {
		return ErrDisposed
	}

	// Scene pass
	r.target.Begin()

	gl.UseProgram(r.meshProgram)
	viewProj := cam.ViewProjection()
	gl.UniformMatrix4fv(r.mesh.viewProj, 1, false, viewProj.Ptr())
	gl.Uniform1i(r.mesh.texture, 0)
	r.uploadLights(s)

	for _, m := range s.Children() {
		if err := r.drawMesh(m); err != nil {
			r.target.End()
			return err
		}
	}
	gl.Disable(gl.CULL_FACE)
	r.target.End()

	// Composite pass
	bg := r.background
	if bg.A == 0 {
		bg = r.config.PageBackground
	}
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(r.compositeProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.target.Texture())
	gl.Uniform1i(r.locScene, 0)
	gl.Uniform1f(r.locOpacity, r.opacity)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)

	return nil
}

func (r *Renderer) uploadLights(s *scene.Scene) {
	ambient := s.Ambient.Contribution()
	gl.Uniform3f(r.mesh.ambient, ambient[0], ambient[1], ambient[2])

	r.lights.SetLights(s.PointLights)
	gl.Uniform1i(r.mesh.lightCount, int32(r.lights.Count))
	positions := r.lights.GetPositions()
	colors := r.lights.GetColors()
	ranges := r.lights.GetRanges()
	gl.Uniform3fv(r.mesh.lightPositions, lighting.MaxPointLights, &positions[0])
	gl.Uniform3fv(r.mesh.lightColors, lighting.MaxPointLights, &colors[0])
	gl.Uniform1fv(r.mesh.lightRanges, lighting.MaxPointLights, &ranges[0])
}

func (r *Renderer) drawMesh(m *scene.Mesh) error {
	geo, err := r.geometry(m.Geometry)
	if err != nil {
		return fmt.Errorf("mesh %s: %w", m.Name, err)
	}

	model := m.ModelMatrix()
	gl.UniformMatrix4fv(r.mesh.model, 1, false, model.Ptr())
	gl.BindVertexArray(geo.vao)

	for _, grp := range m.Geometry.Groups {
		mat := m.MaterialFor(grp)
		if mat == nil {
			continue
		}
		r.applyMaterial(mat)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(grp.Count), gl.UNSIGNED_INT, uintptr(grp.Start*4))
	}

	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) applyMaterial(mat *scene.Material) {
	switch mat.Side {
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case scene.DoubleSide:
		gl.Disable(gl.CULL_FACE)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	c := mat.Color
	gl.Uniform4f(r.mesh.color, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	gl.Uniform1i(r.mesh.lit, boolToInt(mat.Lit))
	gl.Uniform1i(r.mesh.backSide, boolToInt(mat.Side == scene.BackSide))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture(mat.Map))
}

// ReadPixels returns the last rendered scene as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	return r.target.Snapshot()
}

// Dispose releases every GL object owned by the renderer. Safe to call more
// than once.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.log.Info("disposing renderer",
		zap.Int("geometries", len(r.geometries)),
		zap.Int("textures", len(r.textures)),
	)

	for g := range r.geometries {
		r.releaseGeometry(g)
	}
	for t := range r.textures {
		r.releaseTexture(t)
	}
	if r.whiteTexture != 0 {
		gl.DeleteTextures(1, &r.whiteTexture)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.meshProgram != 0 {
		gl.DeleteProgram(r.meshProgram)
	}
	if r.compositeProgram != 0 {
		gl.DeleteProgram(r.compositeProgram)
	}
	if r.target != nil {
		r.target.Dispose()
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
