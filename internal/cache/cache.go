// internal/cache/cache.go
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/law-makers/sgai/pkg/models"
	"github.com/rs/zerolog/log"
)

// Cache stores fetched pages so repeated URLs in one run are served
// without touching the network.
type Cache interface {
	// Get retrieves a cached page by URL.
	Get(url string) (*models.PageData, bool)

	// Set stores a page with the specified TTL. An existing entry for the
	// same URL is replaced.
	Set(url string, data *models.PageData, ttl time.Duration) error

	// Delete removes a cached page. Missing URLs are not an error.
	Delete(url string) error

	// Clear removes all cached pages.
	Clear() error

	// Close stops background goroutines.
	Close()
}

type cacheEntry struct {
	Data      *models.PageData
	ExpiresAt time.Time
	URL       string // For LRU tracking
}

// MemoryCache implements in-memory page caching with LRU eviction
type MemoryCache struct {
	store   map[string]*list.Element
	lruList *list.List
	mu      sync.RWMutex
	maxSize int64 // Maximum cache size in bytes
	size    int64 // Current size in bytes
	ctx     context.Context
	cancel  context.CancelFunc
	hits    uint64
	misses  uint64
}

// NewMemoryCache creates a new in-memory cache with LRU eviction
func NewMemoryCache(maxSizeBytes int64) *MemoryCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 100 * 1024 * 1024 // Default: 100MB
	}

	ctx, cancel := context.WithCancel(context.Background())

	cache := &MemoryCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
		ctx:     ctx,
		cancel:  cancel,
	}

	go cache.cleanupExpired()

	return cache
}

func entrySize(data *models.PageData) int64 {
	// Rough approximation plus ~1KB struct overhead
	return int64(len(data.HTML)+len(data.Markdown)+len(data.Title)) + 1024
}

// Get retrieves a cached page, promoting it to most recently used
func (mc *MemoryCache) Get(url string) (*models.PageData, bool) {
	mc.mu.Lock()
	element, exists := mc.store[url]
	if !exists {
		mc.misses++
		mc.mu.Unlock()
		return nil, false
	}

	entry := element.Value.(*cacheEntry)

	if time.Now().After(entry.ExpiresAt) {
		mc.misses++
		mc.mu.Unlock()
		go mc.Delete(url)
		return nil, false
	}

	mc.lruList.MoveToFront(element)
	mc.hits++
	mc.mu.Unlock()

	log.Debug().Str("url", url).Msg("Cache hit")
	return entry.Data, true
}

// Set stores a page with TTL, evicting least recently used entries as needed
func (mc *MemoryCache) Set(url string, data *models.PageData, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	size := entrySize(data)

	if element, exists := mc.store[url]; exists {
		oldEntry := element.Value.(*cacheEntry)
		mc.size -= entrySize(oldEntry.Data)

		element.Value = &cacheEntry{
			Data:      data,
			ExpiresAt: time.Now().Add(ttl),
			URL:       url,
		}
		mc.lruList.MoveToFront(element)
		mc.size += size

		log.Debug().
			Str("url", url).
			Dur("ttl", ttl).
			Int64("size_bytes", size).
			Msg("Updated cache entry")

		return nil
	}

	for mc.size+size > mc.maxSize && mc.lruList.Len() > 0 {
		mc.evictLRU()
	}

	entry := &cacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		URL:       url,
	}

	element := mc.lruList.PushFront(entry)
	mc.store[url] = element
	mc.size += size

	log.Debug().
		Str("url", url).
		Dur("ttl", ttl).
		Int64("size_bytes", size).
		Msg("Cached page")

	return nil
}

// Delete removes a cached page
func (mc *MemoryCache) Delete(url string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, exists := mc.store[url]; exists {
		entry := element.Value.(*cacheEntry)
		mc.lruList.Remove(element)
		delete(mc.store, url)
		mc.size -= entrySize(entry.Data)
		log.Debug().Str("url", url).Msg("Deleted from cache")
	}

	return nil
}

// Clear removes all cached pages
func (mc *MemoryCache) Clear() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.store = make(map[string]*list.Element)
	mc.lruList = list.New()
	mc.size = 0
	mc.hits = 0
	mc.misses = 0

	log.Debug().Msg("Cache cleared")
	return nil
}

// Close stops the background cleanup goroutine
func (mc *MemoryCache) Close() {
	mc.cancel()
}

// evictLRU removes the least recently used entry (lock must be held)
func (mc *MemoryCache) evictLRU() {
	element := mc.lruList.Back()
	if element == nil {
		return
	}

	entry := element.Value.(*cacheEntry)
	mc.lruList.Remove(element)
	delete(mc.store, entry.URL)
	mc.size -= entrySize(entry.Data)

	log.Debug().Str("url", entry.URL).Msg("Evicted from cache (LRU)")
}

// cleanupExpired periodically removes expired entries
func (mc *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			now := time.Now()

			var next *list.Element
			for element := mc.lruList.Front(); element != nil; element = next {
				next = element.Next()
				entry := element.Value.(*cacheEntry)

				if now.After(entry.ExpiresAt) {
					mc.lruList.Remove(element)
					delete(mc.store, entry.URL)
					mc.size -= entrySize(entry.Data)
				}
			}
			mc.mu.Unlock()
		case <-mc.ctx.Done():
			return
		}
	}
}

// Stats returns cache statistics including hit rate
func (mc *MemoryCache) Stats() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	hitRate := 0.0
	total := mc.hits + mc.misses
	if total > 0 {
		hitRate = float64(mc.hits) / float64(total) * 100
	}

	return map[string]interface{}{
		"entries":     mc.lruList.Len(),
		"size_bytes":  mc.size,
		"max_size":    mc.maxSize,
		"utilization": float64(mc.size) / float64(mc.maxSize) * 100,
		"hits":        mc.hits,
		"misses":      mc.misses,
		"hit_rate":    hitRate,
	}
}
