package engine

import (
	"Globe3D/internal/config"
	"Globe3D/internal/globe"
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const statsInterval = 10 * time.Second

// Engine hosts the viewer in a GLFW window and drives it once per redraw.
type Engine struct {
	cfg      config.Config
	window   *glfw.Window
	renderer *renderer.OpenGLRenderer
	textures *renderer.TextureLoader
	viewer   *globe.Viewer
}

func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run opens the window and renders until it is closed or ctx is done. It
// must be called from the main goroutine.
func (e *Engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win := e.cfg.Window
	window, err := glfw.CreateWindow(int(win.Width), int(win.Height), win.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	defer window.Destroy()
	e.window = window

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	glfw.SwapInterval(1)
	if win.X != 0 || win.Y != 0 {
		window.SetPos(win.X, win.Y)
	}
	styleWindow(window)

	logger.Log.Info("OpenGL context ready", zap.String("device", gl.GoStr(gl.GetString(gl.RENDERER))))

	fbWidth, fbHeight := window.GetFramebufferSize()
	e.renderer = renderer.NewOpenGLRenderer(int32(fbWidth), int32(fbHeight), e.fallbackImage())
	if err := e.renderer.Init(); err != nil {
		return err
	}
	defer e.renderer.Cleanup()

	e.textures = renderer.NewTextureLoader(e.cfg.Assets.Root, e.renderer)
	e.viewer, err = globe.NewViewer(e.cfg, e.renderer, e.textures, nil)
	if err != nil {
		return err
	}
	e.bindInput()

	e.loop(ctx)
	e.textures.LogStats()
	logger.Log.Info("Viewer stopped", zap.Uint64("frames", e.viewer.Frames()))
	return nil
}

func (e *Engine) loop(ctx context.Context) {
	lastStats := time.Now()
	for !e.window.ShouldClose() {
		select {
		case <-ctx.Done():
			logger.Log.Info("Shutdown requested", zap.Error(ctx.Err()))
			return
		default:
		}

		e.textures.Poll()
		e.viewer.Tick()
		e.window.SwapBuffers()
		glfw.PollEvents()

		if renderer.Debug && time.Since(lastStats) > statsInterval {
			e.textures.LogStats()
			lastStats = time.Now()
		}
	}
}

func (e *Engine) bindInput() {
	controls := e.viewer.Controls
	e.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		e.viewer.Resize(int32(width), int32(height))
	})
	e.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			controls.BeginDrag(w.GetCursorPos())
		case glfw.Release:
			controls.EndDrag()
		}
	})
	e.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		controls.Drag(xpos, ypos)
	})
	e.window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		controls.Scroll(yoff)
	})
}

func (e *Engine) fallbackImage() image.Image {
	if e.cfg.Assets.Fallback == config.FallbackNoise {
		return renderer.NoiseImage(256, 128, e.cfg.Stars.Seed)
	}
	return renderer.BlankImage()
}
