package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/kxrai/alicia-3d-website/internal/config"
	"github.com/kxrai/alicia-3d-website/internal/engine/camera"
	"github.com/kxrai/alicia-3d-website/internal/engine/debug"
	"github.com/kxrai/alicia-3d-website/internal/engine/lighting"
	"github.com/kxrai/alicia-3d-website/internal/engine/scene"
	"github.com/kxrai/alicia-3d-website/internal/engine/surface"
	"github.com/kxrai/alicia-3d-website/internal/engine/texture"
	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// ErrSurfaceUnavailable is returned when no renderer can be created on the
// mounted surface.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Build is everything one session allocates for its scene.
type Build struct {
	Scene    *scene.Scene
	Cube     *scene.Mesh
	Outline  *scene.Mesh
	Camera   *camera.PerspectiveCamera
	Controls *camera.OrbitControls
	Renderer surface.Renderer

	Geometry        *scene.Geometry
	Materials       []*scene.Material // One per face, in face order
	OutlineMaterial *scene.Material
}

// Builder constructs the cube scene from configuration.
type Builder struct {
	cfg   *config.Config
	synth *texture.Synthesizer
	dump  *debug.ScreenshotCapture
}

// NewBuilder creates a scene builder. Face textures are drawn by synth.
func NewBuilder(cfg *config.Config, synth *texture.Synthesizer) *Builder {
	b := &Builder{cfg: cfg, synth: synth}
	if dir := cfg.Debug.DumpTexturesDir; dir != "" {
		b.dump = debug.NewScreenshotCapture(dir, "face")
	}
	return b
}

// NewFaceSynthesizer creates the face texture synthesizer described by the
// cube texture settings.
func NewFaceSynthesizer(cfg *config.Config, fontData []byte) (*texture.Synthesizer, error) {
	tc := cfg.Cube.Texture
	text, err := config.ParseColor(tc.TextColor)
	if err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}
	return texture.NewSynthesizer(texture.Layout{
		Size:       tc.Size,
		FontSize:   tc.FontSize,
		Left:       tc.Left,
		Top:        tc.Top,
		LineHeight: tc.LineHeight,
		TextColor:  text,
	}, fontData), nil
}

// Build creates the renderer on surf and then the scene, camera and
// controls. A renderer failure is returned as ErrSurfaceUnavailable before
// anything else is allocated. Partially built results are returned with the
// error so the caller can release them.
func (b *Builder) Build(surf surface.Surface, log *zap.Logger) (*Build, error) {
	out := &Build{}

	r, err := surf.NewRenderer()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	out.Renderer = r

	out.Scene = scene.New()

	// Face materials
	size := b.cfg.Cube.Size
	out.Geometry = scene.NewBoxGeometry(size, size, size)
	for i, fc := range b.cfg.Cube.Faces {
		face := scene.Face(i)
		tex, err := b.faceTexture(face, fc, log)
		if err != nil {
			return out, err
		}
		out.Materials = append(out.Materials, scene.NewBasicMaterial("face "+face.String(), tex))
	}

	out.Cube = scene.NewMesh("cube", out.Geometry, out.Materials...)

	// Outline shell shares the cube geometry and is only drawn from inside.
	outlineColor, err := config.ParseColor(b.cfg.Cube.OutlineColor)
	if err != nil {
		return out, err
	}
	out.OutlineMaterial = scene.NewColorMaterial("outline", outlineColor, scene.BackSide)
	out.Outline = scene.NewMesh("outline", out.Geometry, out.OutlineMaterial)
	out.Outline.SetUniformScale(b.cfg.Cube.OutlineScale)

	out.Scene.Add(out.Cube, out.Outline)

	if err := b.addLights(out.Scene); err != nil {
		return out, err
	}

	// Camera
	bounds := surf.Bounds()
	aspect := float32(1)
	if bounds.Width > 0 && bounds.Height > 0 {
		aspect = bounds.Width / bounds.Height
	}
	cc := b.cfg.Camera
	out.Camera = camera.NewPerspectiveCamera(cc.FOV, aspect, cc.Near, cc.Far)
	out.Camera.SetPosition(0, 0, cc.Distance)
	out.Camera.LookAt(math.V3(0, 0, 0))

	out.Controls = camera.NewOrbitControls(out.Camera, surf)
	out.Controls.EnableDamping = true
	out.Controls.DampingFactor = cc.DampingFactor
	out.Controls.MinPolarAngle = radians(cc.MinPolarAngle)
	out.Controls.MaxPolarAngle = radians(cc.MaxPolarAngle)
	out.Controls.RotateSpeed = cc.RotateSpeed

	log.Debug("scene built",
		zap.Int("materials", len(out.Materials)),
		zap.Float32("aspect", aspect),
	)
	return out, nil
}

// faceTexture synthesizes one face raster. A missing drawing context only
// costs the label.
func (b *Builder) faceTexture(face scene.Face, fc config.FaceConfig, log *zap.Logger) (*scene.Texture, error) {
	bg, err := config.ParseColor(fc.Color)
	if err != nil {
		return nil, fmt.Errorf("face %s: %w", face, err)
	}

	img, err := b.synth.Synthesize(bg, fc.Label)
	if err != nil {
		log.Warn("face label not drawn",
			zap.Stringer("face", face),
			zap.Error(err),
		)
	}

	if b.dump != nil {
		name := fmt.Sprintf("%d_%s", int(face), faceSlug(face))
		if path, err := b.dump.CaptureFromImage(name, img); err != nil {
			log.Warn("failed to dump face texture", zap.Stringer("face", face), zap.Error(err))
		} else {
			log.Debug("face texture written", zap.String("path", path))
		}
	}

	return scene.NewTexture(face.String(), img), nil
}

func (b *Builder) addLights(s *scene.Scene) error {
	lc := b.cfg.Lighting

	ambient, err := config.ParseColor(lc.AmbientColor)
	if err != nil {
		return err
	}
	s.Ambient = lighting.NewAmbientLight(ambient, lc.AmbientIntensity)

	point, err := config.ParseColor(lc.PointColor)
	if err != nil {
		return err
	}
	s.AddPointLight(lighting.NewPointLight(point, lc.PointIntensity, lc.PointPosition))
	return nil
}

func faceSlug(f scene.Face) string {
	return strings.NewReplacer("+", "pos", "-", "neg").Replace(f.String())
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
