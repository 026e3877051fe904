// camera.go
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Target     mgl32.Vec3 // Point the camera looks at
	Up         mgl32.Vec3 // Up direction vector
	Projection mgl32.Mat4 // Projection matrix

	// COLD DATA - Only touched on resize or configuration
	Fov         float32 // Vertical field of view, degrees
	Near        float32 // Near clipping plane
	Far         float32 // Far clipping plane
	AspectRatio float32 // Screen aspect ratio

	Name string
}

func NewPerspectiveCamera(fov, aspectRatio, near, far float32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 0, 1},
		Up:          mgl32.Vec3{0, 1, 0},
		Fov:         fov,
		Near:        near,
		Far:         far,
		AspectRatio: aspectRatio,
	}
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// Setter methods that automatically update projection
func (c *Camera) SetNear(near float32) {
	c.Near = near
	c.UpdateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.Far = far
	c.UpdateProjection()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}
