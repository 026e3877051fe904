package renderer

import (
	"Globe3D/internal/logger"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	perlin "github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

type TextureState int

const (
	TexturePending TextureState = iota
	TextureReady
	TextureFailed
)

// Texture is a handle materials bind immediately. It becomes ready (or
// failed) later, when the loader's Poll picks up the decoded image.
type Texture struct {
	Path   string
	ID     uint32
	State  TextureState
	Width  int
	Height int
	Err    error
}

func (t *Texture) Ready() bool {
	return t != nil && t.State == TextureReady
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	Requested int
	CacheHits int
	Loaded    int
	Failed    int
	Pending   int
}

type decodeResult struct {
	texture *Texture
	img     image.Image
	err     error
}

// TextureLoader decodes images off the render thread and uploads them on
// it. Load never blocks; Poll must be called from the thread owning the GL
// context.
type TextureLoader struct {
	root     string
	uploader Uploader
	client   *http.Client

	cache map[string]*Texture // only touched by the render thread
	stats TextureStats

	mu       sync.Mutex
	finished []decodeResult
	inflight sync.WaitGroup
}

// NewTextureLoader resolves paths against root, a directory or an
// http(s) base URL.
func NewTextureLoader(root string, uploader Uploader) *TextureLoader {
	return &TextureLoader{
		root:     root,
		uploader: uploader,
		client:   http.DefaultClient,
		cache:    make(map[string]*Texture),
	}
}

// Load returns the texture for path, starting a background decode the
// first time the path is seen.
func (tl *TextureLoader) Load(path string) *Texture {
	tl.stats.Requested++
	if tex, exists := tl.cache[path]; exists {
		tl.stats.CacheHits++
		logger.Log.Debug("Texture cache hit", zap.String("path", path))
		return tex
	}

	tex := &Texture{Path: path, State: TexturePending}
	tl.cache[path] = tex
	tl.stats.Pending++

	tl.inflight.Add(1)
	go func() {
		defer tl.inflight.Done()
		img, err := tl.decode(path)

		tl.mu.Lock()
		tl.finished = append(tl.finished, decodeResult{texture: tex, img: img, err: err})
		tl.mu.Unlock()
	}()
	return tex
}

func (tl *TextureLoader) decode(path string) (image.Image, error) {
	r, err := tl.open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func (tl *TextureLoader) open(path string) (io.ReadCloser, error) {
	if strings.HasPrefix(tl.root, "http://") || strings.HasPrefix(tl.root, "https://") {
		url := strings.TrimSuffix(tl.root, "/") + "/" + strings.TrimPrefix(path, "/")
		resp, err := tl.client.Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(filepath.Join(tl.root, path))
}

// Poll uploads every image decoded since the last call and returns how
// many textures settled.
func (tl *TextureLoader) Poll() int {
	tl.mu.Lock()
	done := tl.finished
	tl.finished = nil
	tl.mu.Unlock()

	for _, res := range done {
		tl.stats.Pending--
		tex := res.texture
		if res.err == nil {
			tex.ID, res.err = tl.uploader.Upload(res.img)
		}
		if res.err != nil {
			tex.State = TextureFailed
			tex.Err = res.err
			tl.stats.Failed++
			logger.Log.Warn("Texture unavailable, using fallback",
				zap.String("path", tex.Path),
				zap.Error(res.err))
			continue
		}
		b := res.img.Bounds()
		tex.Width, tex.Height = b.Dx(), b.Dy()
		tex.State = TextureReady
		tl.stats.Loaded++
		logger.Log.Info("Texture loaded",
			zap.String("path", tex.Path),
			zap.Uint32("textureID", tex.ID),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height))
	}
	return len(done)
}

// Wait blocks until every started decode has finished. Poll still has to
// run afterwards to upload the results.
func (tl *TextureLoader) Wait() {
	tl.inflight.Wait()
}

func (tl *TextureLoader) GetStats() TextureStats {
	return tl.stats
}

func (tl *TextureLoader) LogStats() {
	stats := tl.GetStats()
	logger.Log.Info("Texture loader stats",
		zap.Int("requested", stats.Requested),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("loaded", stats.Loaded),
		zap.Int("failed", stats.Failed),
		zap.Int("pending", stats.Pending))
}

// BlankImage is a single opaque white texel: materials sampling it show
// their plain color.
func BlankImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return img
}

// NoiseImage renders grayscale Perlin noise, a cloud-like stand-in for
// textures that never arrive.
func NoiseImage(width, height int, seed int64) image.Image {
	p := perlin.NewPerlin(2, 2, 4, seed)
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := p.Noise2D(float64(x)/32, float64(y)/32) // roughly [-1, 1]
			v := (n + 1) * 127.5
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}
