package texture

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

var faceColors = []color.RGBA{
	{0x40, 0xA2, 0xE3, 0xFF},
	{0x7F, 0xC7, 0xD9, 0xFF},
	{0x36, 0x54, 0x86, 0xFF},
	{0x86, 0xB6, 0xF6, 0xFF},
	{0x30, 0x81, 0xD0, 0xFF},
	{0x6D, 0xB9, 0xEF, 0xFF},
}

var faceLabels = []string{
	"Digital Technologies\nStudent",
	"First Year\nStudent",
	"York\nUniversity",
	"Student\nWeb Developer",
	"A much longer label that runs well past the right edge of the face raster",
	"😊",
}

func TestSynthesizeBackgroundExact(t *testing.T) {
	s := NewSynthesizer(DefaultLayout(), goregular.TTF)
	defer s.Close()

	for i, bg := range faceColors {
		img, err := s.Synthesize(bg, faceLabels[i])
		if err != nil {
			t.Fatalf("face %d: unexpected error: %v", i, err)
		}
		if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
			t.Fatalf("face %d: size %v, want 256x256", i, img.Bounds())
		}
		// Sample corners away from any glyph.
		for _, p := range [][2]int{{0, 0}, {255, 255}, {128, 250}, {2, 2}} {
			if got := img.RGBAAt(p[0], p[1]); got != bg {
				t.Errorf("face %d pixel %v = %v, want %v", i, p, got, bg)
			}
		}
	}
}

func TestSynthesizeDrawsLabel(t *testing.T) {
	s := NewSynthesizer(DefaultLayout(), goregular.TTF)
	defer s.Close()

	bg := faceColors[2]
	img, err := s.Synthesize(bg, "York\nUniversity")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// Both lines put ink inside their 24px bands starting at y=30.
	for line := 0; line < 2; line++ {
		top := 30 + line*24
		if !hasInk(img.Pix, img.Stride, bg, 10, top, 200, top+24) {
			t.Errorf("line %d: no text pixels found", line)
		}
	}
	// Nothing is drawn left of the margin.
	if hasInk(img.Pix, img.Stride, bg, 0, 0, 9, 256) {
		t.Error("text pixels found left of the margin")
	}
	// Nothing is drawn above the first line's band.
	if hasInk(img.Pix, img.Stride, bg, 0, 0, 256, 29) {
		t.Error("text pixels found above the first line")
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	s := NewSynthesizer(DefaultLayout(), goregular.TTF)
	defer s.Close()

	a, _ := s.Synthesize(faceColors[0], faceLabels[0])
	b, _ := s.Synthesize(faceColors[0], faceLabels[0])
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical inputs produced different rasters")
	}

	// Composed and decomposed forms raster identically.
	c, _ := s.Synthesize(faceColors[0], "Caf\u00e9")
	d, _ := s.Synthesize(faceColors[0], "Cafe\u0301")
	if !bytes.Equal(c.Pix, d.Pix) {
		t.Error("NFC-equivalent labels produced different rasters")
	}
}

func TestSynthesizeWithoutDrawingContext(t *testing.T) {
	s := NewSynthesizer(DefaultLayout(), nil)

	bg := faceColors[4]
	img, err := s.Synthesize(bg, "Alicia\nLoi")
	if !errors.Is(err, ErrNoDrawingContext) {
		t.Fatalf("expected ErrNoDrawingContext, got %v", err)
	}
	if img == nil {
		t.Fatal("background raster should still be returned")
	}
	if hasInk(img.Pix, img.Stride, bg, 0, 0, 256, 256) {
		t.Error("background-only raster contains non-background pixels")
	}
}

func TestSynthesizeBadFontData(t *testing.T) {
	s := NewSynthesizer(DefaultLayout(), []byte("not a font"))
	_, err := s.Synthesize(faceColors[0], "x")
	if !errors.Is(err, ErrNoDrawingContext) {
		t.Fatalf("expected ErrNoDrawingContext, got %v", err)
	}
}

// hasInk reports whether any pixel in [x0,x1)x[y0,y1) differs from bg.
func hasInk(pix []byte, stride int, bg color.RGBA, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := y*stride + x*4
			if pix[i] != bg.R || pix[i+1] != bg.G || pix[i+2] != bg.B || pix[i+3] != bg.A {
				return true
			}
		}
	}
	return false
}
