package lighting

import (
	"image/color"
	"testing"
)

func TestColorToRGB(t *testing.T) {
	got := ColorToRGB(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	want := [3]float32{1, 0, 1}
	if got != want {
		t.Errorf("ColorToRGB() = %v, want %v", got, want)
	}
	if ColorToRGB(nil) != White {
		t.Error("nil color should map to white")
	}
}

func TestAmbientContribution(t *testing.T) {
	a := NewAmbientLight(color.White, 0.7)
	got := a.Contribution()
	for i, v := range got {
		if v < 0.699 || v > 0.701 {
			t.Errorf("channel %d = %v, want 0.7", i, v)
		}
	}
}

func TestPointLightBufferTruncates(t *testing.T) {
	b := NewPointLightBuffer()
	lights := make([]PointLight, MaxPointLights+3)
	for i := range lights {
		lights[i] = NewPointLight(color.White, 0.5, [3]float32{float32(i), 0, 0})
	}
	b.SetLights(lights)
	if b.Count != MaxPointLights {
		t.Fatalf("Count = %d, want %d", b.Count, MaxPointLights)
	}

	colors := b.GetColors()
	if colors[0] != 0.5 {
		t.Errorf("colors should be premultiplied by intensity, got %v", colors[0])
	}
	positions := b.GetPositions()
	if positions[3] != 1 {
		t.Errorf("second light X = %v, want 1", positions[3])
	}
}
