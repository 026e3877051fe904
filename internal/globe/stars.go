package globe

import (
	"Globe3D/internal/config"
	"Globe3D/internal/renderer"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type Star struct {
	Position   mgl32.Vec3
	Brightness float32 // gray level in [0.5, 1]
}

// NewRand returns a source seeded with seed, or with the clock when seed
// is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GenerateStars samples count points uniformly over a sphere of the given
// radius. The polar angle comes from acos(2u-1) so area density is even
// and the poles are not over-populated.
func GenerateStars(rng *rand.Rand, count int, radius float32) []Star {
	if rng == nil {
		rng = NewRand(0)
	}
	if count < 0 {
		count = 0
	}
	r := float64(radius)
	stars := make([]Star, count)
	for i := range stars {
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)
		sinPhi := math.Sin(phi)

		stars[i] = Star{
			Position: mgl32.Vec3{
				float32(r * sinPhi * math.Cos(theta)),
				float32(r * sinPhi * math.Sin(theta)),
				float32(r * math.Cos(phi)),
			},
			Brightness: float32(0.5 + 0.5*rng.Float64()),
		}
	}
	return stars
}

// NewStarField turns stars into an unlit, additively blended point cloud.
func NewStarField(stars []Star, cfg config.Stars) *renderer.Points {
	points := &renderer.Points{
		Name:      "stars",
		Positions: make([]mgl32.Vec3, len(stars)),
		Colors:    make([]mgl32.Vec3, len(stars)),
		Material: &renderer.Material{
			Name:         "stars",
			Kind:         renderer.POINTS_MATERIAL,
			Color:        mgl32.Vec3{1, 1, 1},
			Opacity:      cfg.Opacity,
			Transparent:  true,
			Blending:     renderer.AdditiveBlending,
			VertexColors: true,
			PointSize:    cfg.Size,
		},
	}
	for i, s := range stars {
		points.Positions[i] = s.Position
		points.Colors[i] = mgl32.Vec3{s.Brightness, s.Brightness, s.Brightness}
	}
	return points
}
