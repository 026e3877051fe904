package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

type LightMode int

var FaceCullingEnabled bool = true
var Debug bool = false
var ClearColorR float32 = 0.0 // Background clear color red
var ClearColorG float32 = 0.0 // Background clear color green
var ClearColorB float32 = 0.0 // Background clear color blue

const (
	DIRECTIONAL_LIGHT LightMode = iota
	POINT_LIGHT
)

type Light struct {
	Position  mgl32.Vec3 // point lights
	Direction mgl32.Vec3 // directional lights, the way the light travels
	Color     mgl32.Vec3
	Intensity float32
	Range     float32 // zero means unbounded
	Mode      LightMode

	// Point light attenuation
	ConstantAtten  float32
	LinearAtten    float32
	QuadraticAtten float32
}

// Surface is what the frame driver pushes the scene through.
type Surface interface {
	Render(scene *Scene, camera *Camera)
	SetSize(width, height int32)
	Size() (width, height int32)
}

// Uploader turns a decoded image into a GPU texture handle.
type Uploader interface {
	Upload(img image.Image) (uint32, error)
}

// CreateDirectionalLight creates a directional light (like the sun)
func CreateDirectionalLight(direction mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Mode:      DIRECTIONAL_LIGHT,
		Direction: direction.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// CreatePointLight creates a point light that fades out at range_
func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32, range_ float32) *Light {
	light := &Light{
		Mode:          POINT_LIGHT,
		Position:      position,
		Color:         color,
		Intensity:     intensity,
		Range:         range_,
		ConstantAtten: 1.0,
	}
	// At range distance the light is down to roughly 1%
	if range_ > 0 {
		light.LinearAtten = 2.0 / range_
		light.QuadraticAtten = 1.0 / (range_ * range_)
	}
	return light
}

// Attenuation mirrors the falloff computed in the standard fragment shader.
func (l *Light) Attenuation(distance float32) float32 {
	if l.Mode == DIRECTIONAL_LIGHT {
		return 1
	}
	if l.Range > 0 && distance > l.Range {
		return 0
	}
	return 1.0 / (l.ConstantAtten + l.LinearAtten*distance + l.QuadraticAtten*distance*distance)
}
