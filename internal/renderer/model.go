package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type MaterialKind int

const (
	STANDARD_MATERIAL MaterialKind = iota // lit by scene lights
	BASIC_MATERIAL                        // unlit, texture only
	FRESNEL_MATERIAL                      // view dependent rim glow
	POINTS_MATERIAL                       // unlit sprites with vertex colors
)

func (k MaterialKind) String() string {
	switch k {
	case STANDARD_MATERIAL:
		return "standard"
	case BASIC_MATERIAL:
		return "basic"
	case FRESNEL_MATERIAL:
		return "fresnel"
	case POINTS_MATERIAL:
		return "points"
	}
	return "unknown"
}

type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

// Geometry is vertex data that any number of meshes may share.
type Geometry struct {
	// HOT DATA - GPU handles, filled on first draw
	VAO      uint32
	VBO      uint32
	EBO      uint32
	uploaded bool

	// COLD DATA
	Name            string
	Vertices        []float32 // x,y,z per vertex
	TextureCoords   []float32 // u,v per vertex
	Normals         []float32 // x,y,z per vertex
	Faces           []int32   // triangle indices
	InterleavedData []float32 // position, uv, normal (8 floats per vertex)
}

// FresnelParams are the uniforms of the rim glow shader.
type FresnelParams struct {
	RimColor    mgl32.Vec3
	FacingColor mgl32.Vec3
	Bias        float32
	Scale       float32
	Power       float32
}

type Material struct {
	// HOT DATA - Accessed every render call
	Kind         MaterialKind
	Map          *Texture // may be nil or still loading
	Color        mgl32.Vec3
	Opacity      float32
	Transparent  bool
	Blending     Blending
	VertexColors bool
	PointSize    float32
	Fresnel      FresnelParams

	// COLD DATA
	Name string
}

// Blended reports whether the material draws in the translucent pass.
func (m *Material) Blended() bool {
	return m.Transparent || m.Blending != NormalBlending
}

type Mesh struct {
	// HOT DATA - Accessed every frame
	Geometry  *Geometry
	Material  *Material
	Scale     float32
	RotationX float64 // radians
	RotationY float64
	RotationZ float64
	Visible   bool

	// COLD DATA
	Name string
}

func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: geometry,
		Material: material,
		Scale:    1.0,
		Visible:  true,
	}
}

// SetScalar sets a uniform scale on all three axes.
func (m *Mesh) SetScalar(s float32) {
	m.Scale = s
}

func (m *Mesh) ModelMatrix() mgl32.Mat4 {
	return eulerMatrix(m.RotationX, m.RotationY, m.RotationZ).Mul4(mgl32.Scale3D(m.Scale, m.Scale, m.Scale))
}

// eulerMatrix composes rotations in XYZ order: R = Rx * Ry * Rz.
func eulerMatrix(x, y, z float64) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(float32(math.Mod(x, 2*math.Pi)))
	ry := mgl32.HomogRotate3DY(float32(math.Mod(y, 2*math.Pi)))
	rz := mgl32.HomogRotate3DZ(float32(math.Mod(z, 2*math.Pi)))
	return rx.Mul4(ry).Mul4(rz)
}

// CreateGeometry interleaves positions, uvs and normals the way the
// renderer's vertex layout expects them (location 0, 1, 2).
func CreateGeometry(name string, positions []mgl32.Vec3, uvs []mgl32.Vec2, normals []mgl32.Vec3, faces []int32) *Geometry {
	geo := &Geometry{
		Name:            name,
		Vertices:        make([]float32, 0, len(positions)*3),
		TextureCoords:   make([]float32, 0, len(positions)*2),
		Normals:         make([]float32, 0, len(positions)*3),
		InterleavedData: make([]float32, 0, len(positions)*8),
		Faces:           faces,
	}

	for i, p := range positions {
		uv := mgl32.Vec2{}
		if i < len(uvs) {
			uv = uvs[i]
		}
		n := mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		geo.Vertices = append(geo.Vertices, p.X(), p.Y(), p.Z())
		geo.TextureCoords = append(geo.TextureCoords, uv.X(), uv.Y())
		geo.Normals = append(geo.Normals, n.X(), n.Y(), n.Z())
		geo.InterleavedData = append(geo.InterleavedData, p.X(), p.Y(), p.Z(), uv.X(), uv.Y(), n.X(), n.Y(), n.Z())
	}
	return geo
}

func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / 3
}

func (g *Geometry) TriangleCount() int {
	return len(g.Faces) / 3
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Vertices[i*3], g.Vertices[i*3+1], g.Vertices[i*3+2]}
}
