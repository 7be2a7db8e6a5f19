// Package texture synthesizes the colored, labeled rasters used as cube face
// textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ErrNoDrawingContext is returned when the label cannot be drawn. The raster
// returned alongside it still carries the background color.
var ErrNoDrawingContext = errors.New("drawing context unavailable")

// Layout controls face raster size and label placement, in pixels.
type Layout struct {
	Size       int        // Square raster edge
	FontSize   float64    // Font size in pixels (72 DPI)
	Left       int        // Left margin of every line
	Top        int        // Top of the first line
	LineHeight int        // Advance between line tops
	TextColor  color.RGBA // Label color
}

// DefaultLayout returns the 256x256 face layout with 20px text starting at
// (10, 30) and a 24px line advance.
func DefaultLayout() Layout {
	return Layout{
		Size:       256,
		FontSize:   20,
		Left:       10,
		Top:        30,
		LineHeight: 24,
		TextColor:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Synthesizer rasterizes face backgrounds and multi-line labels.
// The font face is acquired lazily on first use and reused afterwards.
type Synthesizer struct {
	layout   Layout
	fontData []byte

	acquired bool
	face     font.Face
	faceErr  error
}

// NewSynthesizer creates a synthesizer drawing labels with the given
// OpenType/TrueType font data.
func NewSynthesizer(layout Layout, fontData []byte) *Synthesizer {
	return &Synthesizer{
		layout:   layout,
		fontData: fontData,
	}
}

// Layout returns the synthesizer layout.
func (s *Synthesizer) Layout() Layout {
	return s.layout
}

// Synthesize fills a raster with bg and draws label on it, one line per
// '\n'. If the drawing context cannot be acquired the background-only
// raster is returned together with an error wrapping ErrNoDrawingContext.
func (s *Synthesizer) Synthesize(bg color.RGBA, label string) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, s.layout.Size, s.layout.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face, err := s.acquire()
	if err != nil {
		return img, err
	}

	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(s.layout.TextColor),
		Face: face,
	}
	for i, line := range strings.Split(norm.NFC.String(label), "\n") {
		top := s.layout.Top + i*s.layout.LineHeight
		d.Dot = fixed.Point26_6{
			X: fixed.I(s.layout.Left),
			Y: fixed.I(top) + ascent,
		}
		d.DrawString(line)
	}

	return img, nil
}

// acquire parses the font and builds the face once.
func (s *Synthesizer) acquire() (font.Face, error) {
	if s.acquired {
		return s.face, s.faceErr
	}
	s.acquired = true

	if len(s.fontData) == 0 {
		s.faceErr = fmt.Errorf("%w: no font data", ErrNoDrawingContext)
		return nil, s.faceErr
	}

	parsed, err := opentype.Parse(s.fontData)
	if err != nil {
		s.faceErr = fmt.Errorf("%w: parsing font: %v", ErrNoDrawingContext, err)
		return nil, s.faceErr
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    s.layout.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		s.faceErr = fmt.Errorf("%w: creating face: %v", ErrNoDrawingContext, err)
		return nil, s.faceErr
	}

	s.face = face
	return s.face, nil
}

// Close releases the font face.
func (s *Synthesizer) Close() error {
	if s.face == nil {
		return nil
	}
	err := s.face.Close()
	s.face = nil
	s.acquired = false
	return err
}
