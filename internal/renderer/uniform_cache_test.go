package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(3)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}
	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
	if cache.program != 3 {
		t.Errorf("Expected program 3, got %d", cache.program)
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["fresnelBias"] = 4

	if loc := cache.GetLocation("fresnelBias"); loc != 4 {
		t.Errorf("Expected cached location 4, got %d", loc)
	}
}

// Missing uniforms stay cached as -1 and the setters skip them without
// touching GL.
func TestUniformCacheSkipsMissingUniforms(t *testing.T) {
	cache := NewUniformCache(0)
	for _, name := range []string{"opacity", "rimColor", "hasTexture", "model"} {
		cache.locations[name] = -1
	}

	cache.SetFloat("opacity", 0.5)
	cache.SetVec3("rimColor", 0, 0.5, 1)
	cache.SetInt("hasTexture", 1)
	cache.SetMat4("model", mgl32.Ident4())
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["test"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}
