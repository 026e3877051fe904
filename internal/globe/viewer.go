package globe

import (
	"Globe3D/internal/behaviour"
	"Globe3D/internal/config"
	"Globe3D/internal/loader"
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// TextureSource hands out texture handles that fill in asynchronously.
type TextureSource interface {
	Load(path string) *renderer.Texture
}

// Viewer owns every entity of the scene for the life of the process. Tick
// and Resize must run on the same thread.
type Viewer struct {
	Scene    *renderer.Scene
	Camera   *renderer.Camera
	Controls *renderer.OrbitControls
	Earth    *Earth
	Stars    *renderer.Points
	Sun      *renderer.Light
	Point    *renderer.Light

	surface    renderer.Surface
	behaviours *behaviour.Manager
	frames     uint64
}

// NewViewer composes lights, camera, controls, the tilted earth and the
// star field. A nil rng falls back to cfg.Stars.Seed.
func NewViewer(cfg config.Config, surface renderer.Surface, textures TextureSource, rng *rand.Rand) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	geo, err := loader.LoadIcosahedron(cfg.Globe.Radius, cfg.Globe.Detail)
	if err != nil {
		return nil, fmt.Errorf("earth geometry: %w", err)
	}

	var tex Textures
	if textures != nil {
		tex = Textures{
			Surface: textures.Load(cfg.Assets.EarthMap),
			Lights:  textures.Load(cfg.Assets.LightsMap),
			Clouds:  textures.Load(cfg.Assets.CloudMap),
		}
	}

	glow := NewFresnelMaterial(
		WithRimColor(cfg.Glow.RimColor),
		WithFacingColor(cfg.Glow.FacingColor),
		WithBias(cfg.Glow.Bias),
		WithScale(cfg.Glow.Scale),
		WithPower(cfg.Glow.Power),
	)
	earth := BuildEarth(geo, tex, glow, cfg.Globe)
	if err := earth.CheckScales(); err != nil {
		return nil, err
	}

	if rng == nil {
		rng = NewRand(cfg.Stars.Seed)
	}
	stars := NewStarField(GenerateStars(rng, cfg.Stars.Count, cfg.Stars.Radius), cfg.Stars)

	white := mgl32.Vec3{1, 1, 1}
	sunPos := mgl32.Vec3(cfg.Lights.SunPosition)
	sun := renderer.CreateDirectionalLight(sunPos.Mul(-1), white, cfg.Lights.SunIntensity)
	point := renderer.CreatePointLight(mgl32.Vec3(cfg.Lights.PointPosition), white, cfg.Lights.PointIntensity, cfg.Lights.PointRange)

	scene := renderer.NewScene()
	scene.AddLight(sun)
	scene.AddLight(point)
	scene.AddGroup(earth.Group)
	scene.AddPoints(stars)

	width, height := surface.Size()
	camera := renderer.NewPerspectiveCamera(cfg.Camera.Fov, aspect(width, height), cfg.Camera.Near, cfg.Camera.Far)
	camera.Position = mgl32.Vec3{0, 0, cfg.Camera.Distance}

	controls := renderer.NewOrbitControls(camera)
	controls.EnableDamping = cfg.Controls.EnableDamping
	controls.DampingFactor = cfg.Controls.DampingFactor
	controls.RotateSpeed = cfg.Controls.RotateSpeed
	controls.ZoomSpeed = cfg.Controls.ZoomSpeed
	controls.MinDistance = cfg.Controls.MinDistance
	controls.MaxDistance = cfg.Controls.MaxDistance
	controls.SetViewportHeight(float32(clampSize(height)))

	v := &Viewer{
		Scene:      scene,
		Camera:     camera,
		Controls:   controls,
		Earth:      earth,
		Stars:      stars,
		Sun:        sun,
		Point:      point,
		surface:    surface,
		behaviours: behaviour.NewManager(),
	}
	v.behaviours.Add(&spin{layers: earth.Layers(), delta: cfg.Globe.RotationSpeed})

	logger.Log.Info("Scene composed",
		zap.Int("detail", cfg.Globe.Detail),
		zap.Int("triangles", geo.TriangleCount()),
		zap.Int("stars", stars.Count()),
		zap.Float64("tilt", cfg.Globe.TiltDegrees))
	return v, nil
}

// AddBehaviour registers extra per-frame logic, run after the earth spin.
func (v *Viewer) AddBehaviour(b behaviour.Behaviour) {
	v.behaviours.Add(b)
}

// Frames is the number of ticks run so far.
func (v *Viewer) Frames() uint64 {
	return v.frames
}
