// Package lighting holds the light sources placed in a scene and packs them
// for GPU upload.
package lighting

import "image/color"

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 4

// White is the default light color.
var White = [3]float32{1, 1, 1}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// NewAmbientLight creates an ambient light with the given color and intensity.
func NewAmbientLight(c color.Color, intensity float32) AmbientLight {
	return AmbientLight{Color: ColorToRGB(c), Intensity: intensity}
}

// Contribution returns the premultiplied ambient term.
func (a AmbientLight) Contribution() [3]float32 {
	return [3]float32{
		a.Color[0] * a.Intensity,
		a.Color[1] * a.Intensity,
		a.Color[2] * a.Intensity,
	}
}

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Falloff distance, 0 means no falloff
	Intensity float32    // Light intensity multiplier
}

// NewPointLight creates a point light without distance falloff.
func NewPointLight(c color.Color, intensity float32, position [3]float32) PointLight {
	return PointLight{
		Position:  position,
		Color:     ColorToRGB(c),
		Intensity: intensity,
	}
}

// ColorToRGB converts any color to a 0-1 RGB triple, ignoring alpha.
func ColorToRGB(c color.Color) [3]float32 {
	if c == nil {
		return White
	}
	r, g, b, _ := c.RGBA()
	return [3]float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
	}
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	count := len(lights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position[0]
		result[i*3+1] = light.Position[1]
		result[i*3+2] = light.Position[2]
	}
	return result
}

// GetColors returns intensity-scaled colors as a flat float32 slice.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}
