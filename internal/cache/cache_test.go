// internal/cache/cache_test.go
package cache

import (
	"testing"
	"time"

	"github.com/law-makers/sgai/pkg/models"
)

func page(url, markdown string) *models.PageData {
	return &models.PageData{URL: url, Markdown: markdown}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(1024 * 1024)
	defer c.Close()

	if _, ok := c.Get("https://example.com"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("https://example.com", page("https://example.com", "# Hi"), time.Minute)

	got, ok := c.Get("https://example.com")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.Markdown != "# Hi" {
		t.Errorf("Markdown = %q", got.Markdown)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(1024 * 1024)
	defer c.Close()

	c.Set("https://example.com", page("https://example.com", "x"), time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("https://example.com"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	// Room for roughly two entries given the ~1KB per-entry overhead
	c := NewMemoryCache(2500)
	defer c.Close()

	c.Set("https://a.example", page("https://a.example", "a"), time.Minute)
	c.Set("https://b.example", page("https://b.example", "b"), time.Minute)

	// Touch a so b becomes least recently used
	c.Get("https://a.example")

	c.Set("https://c.example", page("https://c.example", "c"), time.Minute)

	if _, ok := c.Get("https://b.example"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("https://a.example"); !ok {
		t.Error("expected a to survive")
	}
	if _, ok := c.Get("https://c.example"); !ok {
		t.Error("expected c to be present")
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := NewMemoryCache(1024 * 1024)
	defer c.Close()

	c.Set("https://example.com", page("https://example.com", "x"), time.Minute)
	c.Get("https://example.com")
	c.Get("https://missing.example")

	stats := c.Stats()
	if stats["hits"].(uint64) != 1 {
		t.Errorf("hits = %v", stats["hits"])
	}
	if stats["misses"].(uint64) != 1 {
		t.Errorf("misses = %v", stats["misses"])
	}
}
