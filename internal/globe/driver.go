package globe

import (
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"

	"go.uber.org/zap"
)

// spin turns every earth layer by a fixed angle per frame. The step is not
// scaled by elapsed time, so apparent speed follows the frame rate.
type spin struct {
	layers []*renderer.Mesh
	delta  float64
}

func (s *spin) Start() {}

func (s *spin) Update() {
	for _, layer := range s.layers {
		layer.RotationY += s.delta
	}
}

// Tick advances one frame: behaviours, then controls, then the draw.
func (v *Viewer) Tick() {
	v.behaviours.UpdateAll()
	v.Controls.Update()
	v.surface.Render(v.Scene, v.Camera)
	v.frames++
}

// Resize matches the camera projection and the render surface to a new
// viewport. Dimensions below 1 are clamped to 1.
func (v *Viewer) Resize(width, height int32) {
	width, height = clampSize(width), clampSize(height)
	v.Camera.SetAspectRatio(aspect(width, height))
	v.Controls.SetViewportHeight(float32(height))
	v.surface.SetSize(width, height)
	logger.Log.Debug("Viewport resized", zap.Int32("width", width), zap.Int32("height", height))
}

func clampSize(n int32) int32 {
	if n < 1 {
		return 1
	}
	return n
}

func aspect(width, height int32) float32 {
	return float32(clampSize(width)) / float32(clampSize(height))
}
