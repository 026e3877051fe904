package globe

import (
	"Globe3D/internal/renderer"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFresnelDefaults(t *testing.T) {
	m := NewFresnelMaterial()
	p := m.Fresnel
	if p.RimColor != DefaultRimColor || p.FacingColor != DefaultFacingColor {
		t.Errorf("Unexpected colors %v %v", p.RimColor, p.FacingColor)
	}
	if p.Bias != 0.1 || p.Scale != 1 || p.Power != 4 {
		t.Errorf("Unexpected params bias=%v scale=%v power=%v", p.Bias, p.Scale, p.Power)
	}
	if !m.Transparent || m.Blending != renderer.AdditiveBlending || m.Kind != renderer.FRESNEL_MATERIAL {
		t.Error("Expected a transparent additive fresnel material")
	}
}

func TestFresnelOptions(t *testing.T) {
	red := mgl32.Vec3{1, 0, 0}
	m := NewFresnelMaterial(WithRimColor(red), WithBias(0.2), WithScale(2), WithPower(1), WithFacingColor(red))
	p := m.Fresnel
	if p.RimColor != red || p.FacingColor != red || p.Bias != 0.2 || p.Scale != 2 || p.Power != 1 {
		t.Errorf("Options not applied: %+v", p)
	}
}

func TestFresnelOpacityGrowsTowardRim(t *testing.T) {
	p := NewFresnelMaterial().Fresnel
	normal := mgl32.Vec3{0, 0, 1}

	facing := FresnelOpacity(p, mgl32.Vec3{0, 0, -1}, normal)
	oblique := FresnelOpacity(p, mgl32.Vec3{0.7, 0, -0.7}, normal)
	grazing := FresnelOpacity(p, mgl32.Vec3{1, 0, 0}, normal)

	if facing < 0.099 || facing > 0.101 {
		t.Errorf("Expected facing opacity of about the bias, got %v", facing)
	}
	if !(facing < oblique && oblique < grazing) {
		t.Errorf("Expected opacity to rise toward the rim: %v %v %v", facing, oblique, grazing)
	}
	if grazing != 1 {
		t.Errorf("Expected grazing opacity clamped to 1, got %v", grazing)
	}
}
