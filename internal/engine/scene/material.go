package scene

import (
	"image"
	"image/color"
)

// Side selects which triangle faces a material renders and can be picked on.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	}
	return "unknown"
}

// Texture is CPU-side RGBA pixel data, top row first. Backends upload it on
// first use and release their copy when it is disposed.
type Texture struct {
	resource

	Name  string
	Image *image.RGBA
}

// NewTexture wraps an RGBA raster.
func NewTexture(name string, img *image.RGBA) *Texture {
	return &Texture{Name: name, Image: img}
}

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height int) {
	if t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Material describes how a mesh surface is shaded.
// Basic materials ignore scene lights, Lit ones apply ambient and point lights.
type Material struct {
	resource

	Name  string
	Color color.RGBA // Multiplied with Map when present
	Map   *Texture
	Side  Side
	Lit   bool
}

// NewBasicMaterial creates an unlit material showing the texture as is.
func NewBasicMaterial(name string, tex *Texture) *Material {
	return &Material{
		Name:  name,
		Color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Map:   tex,
		Side:  FrontSide,
	}
}

// NewColorMaterial creates an unlit flat-colored material.
func NewColorMaterial(name string, c color.RGBA, side Side) *Material {
	return &Material{
		Name:  name,
		Color: c,
		Side:  side,
	}
}
