package loader

import (
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var icosahedronVertices = func() []mgl32.Vec3 {
	t := float32((1 + math.Sqrt(5)) / 2)
	return []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}()

// Counter-clockwise seen from outside
var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// LoadIcosahedron builds a sphere by splitting every icosahedron face into
// (detail+1)^2 triangles and pushing the vertices out to radius. Triangles
// do not share vertices so each can carry seam-corrected texture
// coordinates.
func LoadIcosahedron(radius float32, detail int) (*renderer.Geometry, error) {
	if radius <= 0 {
		return nil, errors.New("radius must be positive")
	}
	if detail < 0 {
		return nil, errors.New("detail must not be negative")
	}

	cols := detail + 1
	triangles := 20 * cols * cols
	positions := make([]mgl32.Vec3, 0, triangles*3)

	for _, face := range icosahedronFaces {
		a := icosahedronVertices[face[0]]
		b := icosahedronVertices[face[1]]
		c := icosahedronVertices[face[2]]
		positions = subdivideFace(positions, a, b, c, cols)
	}

	normals := make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		n := p.Normalize()
		normals[i] = n
		positions[i] = n.Mul(radius)
	}

	uvs := make([]mgl32.Vec2, len(positions))
	for i, p := range positions {
		uvs[i] = mgl32.Vec2{azimuth(p)/(2*math.Pi) + 0.5, inclination(p)/math.Pi + 0.5} // v=0 is the top image row, the north pole
	}
	correctUVs(positions, uvs)

	faces := make([]int32, len(positions))
	for i := range faces {
		faces[i] = int32(i)
	}

	geo := renderer.CreateGeometry("icosahedron", positions, uvs, normals, faces)
	logger.Log.Debug("Icosahedron geometry created",
		zap.Float32("radius", radius),
		zap.Int("detail", detail),
		zap.Int("triangles", geo.TriangleCount()))
	return geo, nil
}

// subdivideFace lays a triangular grid of cols rows over abc.
func subdivideFace(out []mgl32.Vec3, a, b, c mgl32.Vec3, cols int) []mgl32.Vec3 {
	grid := make([][]mgl32.Vec3, cols+1)
	for i := 0; i <= cols; i++ {
		f := float32(i) / float32(cols)
		aj := lerp(a, c, f)
		bj := lerp(b, c, f)
		rows := cols - i
		grid[i] = make([]mgl32.Vec3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				grid[i][j] = aj
			} else {
				grid[i][j] = lerp(aj, bj, float32(j)/float32(rows))
			}
		}
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				out = append(out, grid[i][k+1], grid[i+1][k], grid[i][k])
			} else {
				out = append(out, grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
			}
		}
	}
	return out
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func azimuth(v mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(v.Z()), float64(-v.X())))
}

func inclination(v mgl32.Vec3) float32 {
	xz := math.Hypot(float64(v.X()), float64(v.Z()))
	return float32(math.Atan2(float64(-v.Y()), xz))
}

// correctUVs fixes triangles straddling the u=0/1 seam and gives pole
// vertices the azimuth of their triangle's centroid.
func correctUVs(positions []mgl32.Vec3, uvs []mgl32.Vec2) {
	for i := 0; i+2 < len(positions); i += 3 {
		centroid := positions[i].Add(positions[i+1]).Add(positions[i+2]).Mul(1.0 / 3)
		az := azimuth(centroid)
		for k := i; k < i+3; k++ {
			p := positions[k]
			if az < 0 && uvs[k].X() == 1 {
				uvs[k][0] = uvs[k].X() - 1
			}
			if p.X() == 0 && p.Z() == 0 {
				uvs[k][0] = az/(2*math.Pi) + 0.5
			}
		}
	}

	for i := 0; i+2 < len(uvs); i += 3 {
		x0, x1, x2 := uvs[i].X(), uvs[i+1].X(), uvs[i+2].X()
		maxX := float32(math.Max(float64(x0), math.Max(float64(x1), float64(x2))))
		minX := float32(math.Min(float64(x0), math.Min(float64(x1), float64(x2))))
		if maxX > 0.9 && minX < 0.1 {
			for k := i; k < i+3; k++ {
				if uvs[k].X() < 0.2 {
					uvs[k][0] += 1
				}
			}
		}
	}
}
