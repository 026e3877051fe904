package globe

import (
	"Globe3D/internal/config"
	"Globe3D/internal/renderer"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Textures are the surface maps bound to the earth layers. Any of them may
// be nil or still loading.
type Textures struct {
	Surface *renderer.Texture
	Lights  *renderer.Texture
	Clouds  *renderer.Texture
}

// Earth is four concentric meshes over one shared geometry, inside a
// tilted group.
type Earth struct {
	Group    *renderer.Group
	Geometry *renderer.Geometry
	Surface  *renderer.Mesh
	Lights   *renderer.Mesh
	Clouds   *renderer.Mesh
	Glow     *renderer.Mesh
}

// BuildEarth composes the surface, night lights, clouds and glow layers.
func BuildEarth(geo *renderer.Geometry, tex Textures, glow *renderer.Material, cfg config.Globe) *Earth {
	white := mgl32.Vec3{1, 1, 1}

	surface := renderer.NewMesh("surface", geo, &renderer.Material{
		Name:    "surface",
		Kind:    renderer.STANDARD_MATERIAL,
		Map:     tex.Surface,
		Color:   white,
		Opacity: 1,
	})

	lights := renderer.NewMesh("lights", geo, &renderer.Material{
		Name:     "lights",
		Kind:     renderer.BASIC_MATERIAL,
		Map:      tex.Lights,
		Color:    white,
		Opacity:  1,
		Blending: renderer.AdditiveBlending,
	})

	clouds := renderer.NewMesh("clouds", geo, &renderer.Material{
		Name:        "clouds",
		Kind:        renderer.STANDARD_MATERIAL,
		Map:         tex.Clouds,
		Color:       white,
		Opacity:     cfg.CloudOpacity,
		Transparent: true,
		Blending:    renderer.AdditiveBlending,
	})
	clouds.SetScalar(cfg.CloudScale)

	glowMesh := renderer.NewMesh("glow", geo, glow)
	glowMesh.SetScalar(cfg.GlowScale)

	group := renderer.NewGroup("earth")
	group.RotationX = cfg.TiltDegrees * math.Pi / 180
	group.Add(surface, lights, clouds, glowMesh)

	return &Earth{
		Group:    group,
		Geometry: geo,
		Surface:  surface,
		Lights:   lights,
		Clouds:   clouds,
		Glow:     glowMesh,
	}
}

// Layers returns the meshes in compositing order.
func (e *Earth) Layers() []*renderer.Mesh {
	return []*renderer.Mesh{e.Surface, e.Lights, e.Clouds, e.Glow}
}

// CheckScales verifies surface <= lights < clouds < glow.
func (e *Earth) CheckScales() error {
	s, l, c, g := e.Surface.Scale, e.Lights.Scale, e.Clouds.Scale, e.Glow.Scale
	if !(s <= l && l < c && c < g) {
		return fmt.Errorf("layer scales out of order: surface %v, lights %v, clouds %v, glow %v", s, l, c, g)
	}
	return nil
}
