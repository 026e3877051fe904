package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewPerspectiveCamera(t *testing.T) {
	cam := NewPerspectiveCamera(75, 4.0/3.0, 0.1, 1000)

	if cam.Position != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Expected camera at (0,0,1), got %v", cam.Position)
	}
	if cam.Up != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected +Y up, got %v", cam.Up)
	}
	want := mgl32.Perspective(mgl32.DegToRad(75), 4.0/3.0, 0.1, 1000)
	if cam.Projection != want {
		t.Error("Projection not computed on construction")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
	if proj.At(3, 2) != -1.0 {
		t.Error("Perspective projection should have -1 at (3,2)")
	}
}

func TestCameraSettersUpdateProjection(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)

	before := cam.Projection
	cam.SetAspectRatio(2)
	if cam.Projection == before {
		t.Error("SetAspectRatio should rebuild the projection")
	}
	// x scale is f/aspect, y scale is f
	if ratio := cam.Projection.At(1, 1) / cam.Projection.At(0, 0); math.Abs(float64(ratio)-2) > 1e-5 {
		t.Errorf("Expected y/x scale ratio 2, got %v", ratio)
	}

	before = cam.Projection
	cam.SetFov(45)
	if cam.Projection == before {
		t.Error("SetFov should rebuild the projection")
	}

	cam.SetNear(1)
	cam.SetFar(50)
	if cam.Near != 1 || cam.Far != 50 {
		t.Errorf("Expected near=1 far=50, got %v %v", cam.Near, cam.Far)
	}
}

func TestCameraViewLooksAtTarget(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	view := cam.GetViewMatrix()
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	// The target sits straight ahead, five units down -Z in view space
	if !near(origin.Vec3(), mgl32.Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("Expected target at (0,0,-5) in view space, got %v", origin)
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 2}

	vp := cam.GetViewProjection()
	want := cam.GetProjectionMatrix().Mul4(cam.GetViewMatrix())
	if vp != want {
		t.Error("ViewProjection should be projection times view")
	}
}
