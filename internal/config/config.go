// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// FaceCount is the number of cube faces a configuration must describe.
const FaceCount = 6

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window       WindowConfig       `yaml:"window"`
	Cube         CubeConfig         `yaml:"cube"`
	Camera       CameraConfig       `yaml:"camera"`
	Lighting     LightingConfig     `yaml:"lighting"`
	Presentation PresentationConfig `yaml:"presentation"`
	Debug        DebugConfig        `yaml:"debug"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// FaceConfig describes one cube face. Faces are listed in the order
// +x, -x, +y, -y, +z, -z.
type FaceConfig struct {
	Color string `yaml:"color"` // Hex, e.g. "#40A2E3"
	Label string `yaml:"label"` // Lines separated by '\n'
}

// TextureConfig controls face raster layout.
type TextureConfig struct {
	Size       int     `yaml:"size"`
	FontSize   float64 `yaml:"font_size"`
	Left       int     `yaml:"left"`
	Top        int     `yaml:"top"`
	LineHeight int     `yaml:"line_height"`
	TextColor  string  `yaml:"text_color"`
}

// CubeConfig holds cube geometry and animation settings.
type CubeConfig struct {
	Size         float32       `yaml:"size"`
	OutlineScale float32       `yaml:"outline_scale"`
	OutlineColor string        `yaml:"outline_color"`
	RotationStep float32       `yaml:"rotation_step"` // Radians per frame, both axes
	Faces        []FaceConfig  `yaml:"faces"`
	Texture      TextureConfig `yaml:"texture"`
}

// CameraConfig holds camera and orbit controller settings.
type CameraConfig struct {
	FOV           float32 `yaml:"fov"` // Vertical, degrees
	Near          float32 `yaml:"near"`
	Far           float32 `yaml:"far"`
	Distance      float32 `yaml:"distance"`
	DampingFactor float32 `yaml:"damping_factor"`
	MinPolarAngle float32 `yaml:"min_polar_angle"` // Degrees from +Y
	MaxPolarAngle float32 `yaml:"max_polar_angle"` // Degrees from +Y
	RotateSpeed   float32 `yaml:"rotate_speed"`
}

// LightingConfig holds scene light settings.
type LightingConfig struct {
	AmbientColor     string     `yaml:"ambient_color"`
	AmbientIntensity float32    `yaml:"ambient_intensity"`
	PointColor       string     `yaml:"point_color"`
	PointIntensity   float32    `yaml:"point_intensity"`
	PointPosition    [3]float32 `yaml:"point_position"`
}

// PresentationConfig holds the colors used for the two interaction modes.
type PresentationConfig struct {
	Accent         string `yaml:"accent"`          // Container background while expanded
	PageBackground string `yaml:"page_background"` // Shown through a transparent container
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ShowFPS         bool   `yaml:"show_fps"`
	DumpTexturesDir string `yaml:"dump_textures_dir"` // Empty disables the dump
	ScreenshotDir   string `yaml:"screenshot_dir"`    // F12 captures; empty is the working directory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultFaces returns the six default faces.
func DefaultFaces() []FaceConfig {
	return []FaceConfig{
		{Color: "#40A2E3", Label: "Digital Technologies\nStudent"},
		{Color: "#7FC7D9", Label: "First Year\nStudent"},
		{Color: "#365486", Label: "York\nUniversity"},
		{Color: "#86B6F6", Label: "Student\nWeb Developer"},
		{Color: "#3081D0", Label: "Alicia\nLoi"},
		{Color: "#6DB9EF", Label: "😊"},
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Alicia Loi",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Cube: CubeConfig{
			Size:         2,
			OutlineScale: 1.05,
			OutlineColor: "#FFFFFF",
			RotationStep: 0.0055,
			Faces:        DefaultFaces(),
			Texture: TextureConfig{
				Size:       256,
				FontSize:   20,
				Left:       10,
				Top:        30,
				LineHeight: 24,
				TextColor:  "#FFFFFF",
			},
		},
		Camera: CameraConfig{
			FOV:           75,
			Near:          0.1,
			Far:           1000,
			Distance:      5,
			DampingFactor: 0.25,
			MinPolarAngle: 60,
			MaxPolarAngle: 90,
			RotateSpeed:   1,
		},
		Lighting: LightingConfig{
			AmbientColor:     "#FFFFFF",
			AmbientIntensity: 0.7,
			PointColor:       "#FFFFFF",
			PointIntensity:   0.5,
			PointPosition:    [3]float32{5, 3, 5},
		},
		Presentation: PresentationConfig{
			Accent:         "#40A2E3",
			PageBackground: "#FFFFFF",
		},
		Debug: DebugConfig{
			ShowFPS:         false,
			DumpTexturesDir: "",
			ScreenshotDir:   "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ParseColor converts a hex color string to an opaque RGBA value.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Validate checks the settings the viewer cannot run without.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if len(c.Cube.Faces) != FaceCount {
		return fmt.Errorf("%w: cube needs %d faces, got %d", ErrInvalidConfig, FaceCount, len(c.Cube.Faces))
	}
	if c.Cube.Size <= 0 || c.Cube.OutlineScale <= 0 {
		return fmt.Errorf("%w: cube size and outline scale must be positive", ErrInvalidConfig)
	}
	if c.Cube.Texture.Size <= 0 || c.Cube.Texture.FontSize <= 0 {
		return fmt.Errorf("%w: texture size and font size must be positive", ErrInvalidConfig)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip range %g..%g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.MinPolarAngle > c.Camera.MaxPolarAngle {
		return fmt.Errorf("%w: min polar angle %g exceeds max %g", ErrInvalidConfig, c.Camera.MinPolarAngle, c.Camera.MaxPolarAngle)
	}

	colors := []string{
		c.Cube.OutlineColor,
		c.Cube.Texture.TextColor,
		c.Lighting.AmbientColor,
		c.Lighting.PointColor,
		c.Presentation.Accent,
		c.Presentation.PageBackground,
	}
	for i, f := range c.Cube.Faces {
		if _, err := ParseColor(f.Color); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}
	for _, hex := range colors {
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	return nil
}
