package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fallback modes for textures that fail to load.
const (
	FallbackBlank = "blank"
	FallbackNoise = "noise"
)

type Window struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Title  string `yaml:"title"`
}

type Assets struct {
	Root      string `yaml:"root"` // directory or http(s) base URL
	EarthMap  string `yaml:"earth_map"`
	LightsMap string `yaml:"lights_map"`
	CloudMap  string `yaml:"cloud_map"`
	Fallback  string `yaml:"fallback"`
}

type Globe struct {
	Detail        int     `yaml:"detail"`
	Radius        float32 `yaml:"radius"`
	TiltDegrees   float64 `yaml:"tilt_degrees"`
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per frame
	CloudScale    float32 `yaml:"cloud_scale"`
	GlowScale     float32 `yaml:"glow_scale"`
	CloudOpacity  float32 `yaml:"cloud_opacity"`
}

type Glow struct {
	RimColor    [3]float32 `yaml:"rim_color"`
	FacingColor [3]float32 `yaml:"facing_color"`
	Bias        float32    `yaml:"bias"`
	Scale       float32    `yaml:"scale"`
	Power       float32    `yaml:"power"`
}

type Stars struct {
	Count   int     `yaml:"count"`
	Radius  float32 `yaml:"radius"`
	Opacity float32 `yaml:"opacity"`
	Size    float32 `yaml:"size"`
	Seed    int64   `yaml:"seed"` // 0 means time seeded
}

type Camera struct {
	Fov      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
}

type Controls struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
}

type Lights struct {
	SunPosition    [3]float32 `yaml:"sun_position"`
	SunIntensity   float32    `yaml:"sun_intensity"`
	PointPosition  [3]float32 `yaml:"point_position"`
	PointIntensity float32    `yaml:"point_intensity"`
	PointRange     float32    `yaml:"point_range"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the whole viewer configuration.
type Config struct {
	Window   Window   `yaml:"window"`
	Assets   Assets   `yaml:"assets"`
	Globe    Globe    `yaml:"globe"`
	Glow     Glow     `yaml:"glow"`
	Stars    Stars    `yaml:"stars"`
	Camera   Camera   `yaml:"camera"`
	Controls Controls `yaml:"controls"`
	Lights   Lights   `yaml:"lights"`
	Log      Log      `yaml:"log"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1024, Height: 768, Title: "Globe3D"},
		Assets: Assets{
			Root:      ".",
			EarthMap:  "earthmap1k.jpg",
			LightsMap: "earthlights1k.jpg",
			CloudMap:  "cloud_combined_2048.jpg",
			Fallback:  FallbackBlank,
		},
		Globe: Globe{
			Detail:        12,
			Radius:        1,
			TiltDegrees:   -23.4,
			RotationSpeed: 0.002,
			CloudScale:    1.003,
			GlowScale:     1.01,
			CloudOpacity:  0.8,
		},
		Glow: Glow{
			RimColor:    [3]float32{0, 0x88 / 255.0, 1},
			FacingColor: [3]float32{0, 0, 0},
			Bias:        0.1,
			Scale:       1.0,
			Power:       4.0,
		},
		Stars: Stars{Count: 7000, Radius: 1000, Opacity: 0.8, Size: 1},
		Camera: Camera{
			Fov:      75,
			Near:     0.1,
			Far:      2000,
			Distance: 2,
		},
		Controls: Controls{
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			MinDistance:   1.1,
			MaxDistance:   500,
		},
		Lights: Lights{
			SunPosition:    [3]float32{-2.5, 0.5, 1.5},
			SunIntensity:   1,
			PointPosition:  [3]float32{5, 5, 5},
			PointIntensity: 1,
			PointRange:     100,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a YAML config on top of Default(). An empty path or a missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width < 1 || c.Window.Height < 1:
		return fmt.Errorf("window size must be at least 1x1, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Globe.Detail < 0:
		return fmt.Errorf("globe detail must not be negative, got %d", c.Globe.Detail)
	case c.Globe.Radius <= 0:
		return fmt.Errorf("globe radius must be positive, got %v", c.Globe.Radius)
	case !(1 < c.Globe.CloudScale && c.Globe.CloudScale < c.Globe.GlowScale):
		return fmt.Errorf("layer scales must satisfy 1 < clouds (%v) < glow (%v)", c.Globe.CloudScale, c.Globe.GlowScale)
	case c.Globe.CloudOpacity < 0 || c.Globe.CloudOpacity > 1:
		return fmt.Errorf("cloud opacity must be in [0,1], got %v", c.Globe.CloudOpacity)
	case c.Stars.Count < 0:
		return fmt.Errorf("star count must not be negative, got %d", c.Stars.Count)
	case c.Stars.Radius <= 0:
		return fmt.Errorf("star radius must be positive, got %v", c.Stars.Radius)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return fmt.Errorf("camera clip planes must satisfy 0 < near (%v) < far (%v)", c.Camera.Near, c.Camera.Far)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("camera fov must be in (0,180), got %v", c.Camera.Fov)
	case c.Lights.SunPosition == [3]float32{}:
		return errors.New("sun position must not be the origin")
	case c.Controls.MinDistance > c.Controls.MaxDistance:
		return fmt.Errorf("controls min distance %v exceeds max %v", c.Controls.MinDistance, c.Controls.MaxDistance)
	}
	if c.Assets.Fallback != FallbackBlank && c.Assets.Fallback != FallbackNoise {
		return fmt.Errorf("unknown texture fallback %q", c.Assets.Fallback)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
