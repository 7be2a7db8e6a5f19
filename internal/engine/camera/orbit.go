package camera

import (
	"github.com/chewxy/math32"

	"github.com/kxrai/alicia-3d-website/pkg/math"
)

// DragSource delivers pointer drag deltas in pixels. The drawing surface
// implements it.
type DragSource interface {
	AddDragListener(fn func(dx, dy float32)) int
	RemoveDragListener(id int)
	Size() (width, height int)
}

// polarEpsilon keeps the camera off the poles where LookAt degenerates.
const polarEpsilon = 1e-6

// OrbitControls rotates a camera around Target on a sphere. Drags feed an
// angular delta; Update applies it, with damping easing the motion out over
// several frames. Polar angle is measured from +Y.
type OrbitControls struct {
	camera *PerspectiveCamera
	source DragSource

	listener int
	attached bool
	disposed bool

	Target        math.Vec3
	EnableDamping bool
	DampingFactor float32
	MinPolarAngle float32
	MaxPolarAngle float32
	RotateSpeed   float32

	deltaTheta float32 // Pending azimuth change
	deltaPhi   float32 // Pending polar change
}

// NewOrbitControls binds controls to a camera and starts listening for drags
// on source. source may be nil for controls driven only by HandleDrag.
func NewOrbitControls(cam *PerspectiveCamera, source DragSource) *OrbitControls {
	o := &OrbitControls{
		camera:        cam,
		source:        source,
		Target:        cam.Target,
		DampingFactor: 0.05,
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		RotateSpeed:   1,
	}
	if source != nil {
		o.listener = source.AddDragListener(o.HandleDrag)
		o.attached = true
	}
	return o
}

// HandleDrag converts a pixel drag into pending rotation. A full surface
// height of drag turns the camera one full revolution.
func (o *OrbitControls) HandleDrag(dx, dy float32) {
	if o.disposed {
		return
	}
	height := float32(1)
	if o.source != nil {
		if _, h := o.source.Size(); h > 0 {
			height = float32(h)
		}
	}
	o.deltaTheta -= 2 * math32.Pi * dx / height * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / height * o.RotateSpeed
}

// Update advances the camera by one step. It returns true if the camera moved.
func (o *OrbitControls) Update() bool {
	offset := o.camera.Position.Sub(o.Target)
	radius := offset.Length()
	if radius == 0 {
		return false
	}

	theta := math32.Atan2(offset.X, offset.Z)
	phi := math32.Acos(clamp(offset.Y/radius, -1, 1))

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}

	phi = clamp(phi, o.MinPolarAngle, o.MaxPolarAngle)
	phi = clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	sinPhi := math32.Sin(phi)
	pos := o.Target.Add(math.V3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	))

	moved := pos.Distance(o.camera.Position) > 1e-6
	o.camera.Position = pos
	o.camera.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}

	return moved
}

// PolarAngle returns the camera's current angle from +Y.
func (o *OrbitControls) PolarAngle() float32 {
	offset := o.camera.Position.Sub(o.Target)
	r := offset.Length()
	if r == 0 {
		return 0
	}
	return math32.Acos(clamp(offset.Y/r, -1, 1))
}

// Attached reports whether the controls are still listening for drags.
func (o *OrbitControls) Attached() bool {
	return o.attached
}

// Dispose stops listening for drags. Safe to call more than once.
func (o *OrbitControls) Dispose() {
	if o.attached && o.source != nil {
		o.source.RemoveDragListener(o.listener)
	}
	o.attached = false
	o.disposed = true
	o.deltaTheta = 0
	o.deltaPhi = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
