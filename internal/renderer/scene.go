package renderer

import "github.com/go-gl/mathgl/mgl32"

// Group carries a transform shared by its child meshes.
type Group struct {
	Name      string
	RotationX float64
	RotationY float64
	RotationZ float64
	Children  []*Mesh
}

func NewGroup(name string) *Group {
	return &Group{Name: name}
}

func (g *Group) Add(meshes ...*Mesh) {
	g.Children = append(g.Children, meshes...)
}

func (g *Group) Matrix() mgl32.Mat4 {
	return eulerMatrix(g.RotationX, g.RotationY, g.RotationZ)
}

// WorldMatrix is the group transform applied on top of the child's own.
func (g *Group) WorldMatrix(m *Mesh) mgl32.Mat4 {
	return g.Matrix().Mul4(m.ModelMatrix())
}

// Points is an unlit point cloud, one vertex per point.
type Points struct {
	Name      string
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3
	Material  *Material

	VAO      uint32
	VBO      uint32
	uploaded bool
}

func (p *Points) Count() int {
	return len(p.Positions)
}

// Blending is the material's blend mode, normal when there is no material.
func (p *Points) Blending() Blending {
	if p.Material == nil {
		return NormalBlending
	}
	return p.Material.Blending
}

// Scene is the retained scene graph. Nothing is removed once added.
type Scene struct {
	Lights []*Light
	Groups []*Group
	Points []*Points
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddLight(l *Light) {
	s.Lights = append(s.Lights, l)
}

func (s *Scene) AddGroup(g *Group) {
	s.Groups = append(s.Groups, g)
}

func (s *Scene) AddPoints(p *Points) {
	s.Points = append(s.Points, p)
}

// FirstLight returns the first light of the given mode, or nil.
func (s *Scene) FirstLight(mode LightMode) *Light {
	for _, l := range s.Lights {
		if l.Mode == mode {
			return l
		}
	}
	return nil
}

// DrawItem is a mesh resolved to its world transform.
type DrawItem struct {
	Mesh  *Mesh
	World mgl32.Mat4
}

// DrawList splits visible meshes into the opaque and blended passes, each
// in insertion order.
func (s *Scene) DrawList() (opaque, blended []DrawItem) {
	for _, g := range s.Groups {
		for _, m := range g.Children {
			if !m.Visible || m.Geometry == nil || m.Material == nil {
				continue
			}
			item := DrawItem{Mesh: m, World: g.WorldMatrix(m)}
			if m.Material.Blended() {
				blended = append(blended, item)
			} else {
				opaque = append(opaque, item)
			}
		}
	}
	return opaque, blended
}
