package globe

import (
	"Globe3D/internal/renderer"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Defaults of the atmosphere glow.
var (
	DefaultRimColor    = mgl32.Vec3{0, 0x88 / 255.0, 1}
	DefaultFacingColor = mgl32.Vec3{0, 0, 0}
)

const (
	DefaultFresnelBias  = 0.1
	DefaultFresnelScale = 1.0
	DefaultFresnelPower = 4.0
)

type FresnelOption func(*renderer.FresnelParams)

func WithRimColor(c mgl32.Vec3) FresnelOption {
	return func(p *renderer.FresnelParams) { p.RimColor = c }
}

func WithFacingColor(c mgl32.Vec3) FresnelOption {
	return func(p *renderer.FresnelParams) { p.FacingColor = c }
}

func WithBias(bias float32) FresnelOption {
	return func(p *renderer.FresnelParams) { p.Bias = bias }
}

func WithScale(scale float32) FresnelOption {
	return func(p *renderer.FresnelParams) { p.Scale = scale }
}

func WithPower(power float32) FresnelOption {
	return func(p *renderer.FresnelParams) { p.Power = power }
}

// NewFresnelMaterial returns the translucent additive shell material whose
// opacity grows toward the silhouette.
func NewFresnelMaterial(opts ...FresnelOption) *renderer.Material {
	params := renderer.FresnelParams{
		RimColor:    DefaultRimColor,
		FacingColor: DefaultFacingColor,
		Bias:        DefaultFresnelBias,
		Scale:       DefaultFresnelScale,
		Power:       DefaultFresnelPower,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return &renderer.Material{
		Name:        "glow",
		Kind:        renderer.FRESNEL_MATERIAL,
		Color:       mgl32.Vec3{1, 1, 1},
		Opacity:     1,
		Transparent: true,
		Blending:    renderer.AdditiveBlending,
		Fresnel:     params,
	}
}

// FresnelOpacity is the alpha the glow shader computes for a fragment seen
// along viewDir (camera to fragment) with surface normal n.
func FresnelOpacity(p renderer.FresnelParams, viewDir, n mgl32.Vec3) float32 {
	d := float64(viewDir.Normalize().Dot(n.Normalize()))
	f := float64(p.Bias) + float64(p.Scale)*math.Pow(math.Max(1+d, 0), float64(p.Power))
	return float32(math.Max(0, math.Min(1, f)))
}
