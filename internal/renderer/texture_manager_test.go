package renderer

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type fakeUploader struct {
	next    uint32
	uploads int
	err     error
}

func (u *fakeUploader) Upload(img image.Image) (uint32, error) {
	if u.err != nil {
		return 0, u.err
	}
	u.uploads++
	u.next++
	return u.next, nil
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestTextureLoaderLoadsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "earth.png"), 4, 2)
	up := &fakeUploader{}
	tl := NewTextureLoader(dir, up)

	tex := tl.Load("earth.png")
	if tex.State != TexturePending || tex.Ready() {
		t.Fatal("A fresh texture should be pending")
	}

	tl.Wait()
	if n := tl.Poll(); n != 1 {
		t.Fatalf("Expected 1 settled texture, got %d", n)
	}
	if !tex.Ready() || tex.ID != 1 || tex.Width != 4 || tex.Height != 2 {
		t.Errorf("Unexpected texture after poll: %+v", tex)
	}
	if up.uploads != 1 {
		t.Errorf("Expected one upload, got %d", up.uploads)
	}
}

func TestTextureLoaderCachesHandles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "clouds.png"), 1, 1)
	up := &fakeUploader{}
	tl := NewTextureLoader(dir, up)

	a := tl.Load("clouds.png")
	b := tl.Load("clouds.png")
	if a != b {
		t.Error("Same path should give the same handle")
	}
	tl.Wait()
	tl.Poll()

	stats := tl.GetStats()
	if stats.Requested != 2 || stats.CacheHits != 1 || stats.Loaded != 1 || stats.Pending != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if up.uploads != 1 {
		t.Errorf("Expected a single upload, got %d", up.uploads)
	}
}

func TestTextureLoaderMissingFileFails(t *testing.T) {
	tl := NewTextureLoader(t.TempDir(), &fakeUploader{})

	tex := tl.Load("nope.jpg")
	tl.Wait()
	tl.Poll()

	if tex.State != TextureFailed || tex.Err == nil {
		t.Errorf("Expected a failed texture, got %+v", tex)
	}
	if tex.Ready() {
		t.Error("Failed texture must not report ready")
	}
	if tl.GetStats().Failed != 1 {
		t.Errorf("Expected 1 failure, got %+v", tl.GetStats())
	}
}

func TestTextureLoaderCorruptImageFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	tl := NewTextureLoader(dir, &fakeUploader{})
	tex := tl.Load("bad.png")
	tl.Wait()
	tl.Poll()
	if tex.State != TextureFailed {
		t.Errorf("Expected decode failure, got state %v", tex.State)
	}
}

func TestTextureLoaderUploadError(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 1, 1)
	tl := NewTextureLoader(dir, &fakeUploader{err: errors.New("no context")})

	tex := tl.Load("a.png")
	tl.Wait()
	tl.Poll()
	if tex.State != TextureFailed || tex.ID != 0 {
		t.Errorf("Expected upload failure, got %+v", tex)
	}
}

func TestTextureLoaderPollBeforeDecodeIsEmpty(t *testing.T) {
	tl := NewTextureLoader(t.TempDir(), &fakeUploader{})
	if n := tl.Poll(); n != 0 {
		t.Errorf("Expected nothing to poll, got %d", n)
	}
}

func TestTextureLoaderFetchesOverHTTP(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "lights.png"), 3, 3)
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	tl := NewTextureLoader(srv.URL+"/", &fakeUploader{})
	ok := tl.Load("lights.png")
	missing := tl.Load("/gone.png")
	tl.Wait()
	tl.Poll()

	if !ok.Ready() || ok.Width != 3 {
		t.Errorf("Expected fetched texture, got %+v", ok)
	}
	if missing.State != TextureFailed {
		t.Errorf("Expected 404 to fail, got %+v", missing)
	}
}

func TestBlankImage(t *testing.T) {
	img := BlankImage()
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 1x1, got %v", img.Bounds())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Error("Expected opaque white")
	}
}

func TestNoiseImage(t *testing.T) {
	img := NoiseImage(64, 32, 3)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}
	seen := map[uint32]bool{}
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			v, _, _, _ := img.At(x, y).RGBA()
			seen[v] = true
		}
	}
	if len(seen) < 2 {
		t.Error("Noise image should not be flat")
	}

	again := NoiseImage(64, 32, 3)
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if img.At(x, y) != again.At(x, y) {
				t.Fatal("Same seed should give the same noise")
			}
		}
	}
}
