package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const orbitEPS = 1e-6

// OrbitControls turns pointer input into an orbit of the camera around
// Target. Input handlers only accumulate deltas; Update applies them.
type OrbitControls struct {
	camera *Camera

	Target        mgl32.Vec3
	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32

	thetaDelta float64 // azimuth change, radians
	phiDelta   float64 // polar change, radians
	scale      float64 // pending dolly factor

	dragging       bool
	lastX, lastY   float64
	viewportHeight float32
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	c := &OrbitControls{
		camera:         camera,
		DampingFactor:  0.05,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		MaxDistance:    float32(math.Inf(1)),
		scale:          1,
		viewportHeight: 1,
	}
	camera.LookAt(c.Target)
	return c
}

// SetViewportHeight scales drag distances so a full-height drag is one turn.
func (c *OrbitControls) SetViewportHeight(height float32) {
	if height < 1 {
		height = 1
	}
	c.viewportHeight = height
}

func (c *OrbitControls) RotateLeft(angle float64) {
	c.thetaDelta -= angle
}

func (c *OrbitControls) RotateUp(angle float64) {
	c.phiDelta -= angle
}

// Dolly multiplies the camera distance on the next Update.
func (c *OrbitControls) Dolly(factor float64) {
	if factor > 0 {
		c.scale *= factor
	}
}

func (c *OrbitControls) BeginDrag(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

func (c *OrbitControls) Drag(x, y float64) {
	if !c.dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	h := float64(c.viewportHeight)
	speed := float64(c.RotateSpeed)
	c.RotateLeft(2 * math.Pi * dx / h * speed)
	c.RotateUp(2 * math.Pi * dy / h * speed)
}

func (c *OrbitControls) EndDrag() {
	c.dragging = false
}

// Scroll dollies in for positive offsets and out for negative ones.
func (c *OrbitControls) Scroll(yoffset float64) {
	zoom := math.Pow(0.95, float64(c.ZoomSpeed))
	switch {
	case yoffset > 0:
		c.Dolly(zoom)
	case yoffset < 0:
		c.Dolly(1 / zoom)
	}
}

// Update moves the camera by the pending input and re-aims it at Target.
// It reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	offset := c.camera.Position.Sub(c.Target)
	radius := float64(offset.Len())
	if radius < orbitEPS {
		radius = orbitEPS
	}
	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := math.Acos(clampf(float64(offset.Y())/radius, -1, 1))

	if c.EnableDamping {
		theta += c.thetaDelta * float64(c.DampingFactor)
		phi += c.phiDelta * float64(c.DampingFactor)
	} else {
		theta += c.thetaDelta
		phi += c.phiDelta
	}
	phi = clampf(phi, orbitEPS, math.Pi-orbitEPS)

	radius *= c.scale
	radius = clampf(radius, float64(c.MinDistance), float64(c.MaxDistance))

	sinPhi := math.Sin(phi)
	next := mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	}.Add(c.Target)

	moved := c.thetaDelta != 0 || c.phiDelta != 0 || c.scale != 1

	if c.EnableDamping {
		c.thetaDelta *= 1 - float64(c.DampingFactor)
		c.phiDelta *= 1 - float64(c.DampingFactor)
		if math.Abs(c.thetaDelta) < orbitEPS {
			c.thetaDelta = 0
		}
		if math.Abs(c.phiDelta) < orbitEPS {
			c.phiDelta = 0
		}
	} else {
		c.thetaDelta, c.phiDelta = 0, 0
	}
	c.scale = 1

	if moved {
		c.camera.Position = next
	}
	c.camera.LookAt(c.Target)
	return moved
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
