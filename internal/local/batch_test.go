// internal/local/batch_test.go
package local

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/law-makers/sgai/internal/cache"
	"github.com/law-makers/sgai/pkg/models"
)

func newServer(t *testing.T, fn http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(fn)
	t.Cleanup(server.Close)
	return server
}

func TestFetchAll_AllPagesReturned(t *testing.T) {
	engine, server := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><head><title>%s</title></head><body>ok</body></html>", r.URL.Path)
	}))

	urls := []string{
		server.URL + "/one",
		server.URL + "/two",
		server.URL + "/three",
	}

	seen := make(map[string]bool)
	for res := range engine.FetchAll(context.Background(), urls, models.FetchOptions{}, 2) {
		if res.Error != nil {
			t.Errorf("fetch %s failed: %v", res.URL, res.Error)
			continue
		}
		seen[res.URL] = true
	}

	if len(seen) != len(urls) {
		t.Errorf("got %d results, want %d", len(seen), len(urls))
	}
}

func TestFetchAll_RespectsConcurrencyLimit(t *testing.T) {
	var active, peak int32
	engine, server := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		w.Write([]byte("<html><body>ok</body></html>"))
	}))

	var urls []string
	for i := 0; i < 6; i++ {
		urls = append(urls, fmt.Sprintf("%s/p%d", server.URL, i))
	}

	for res := range engine.FetchAll(context.Background(), urls, models.FetchOptions{}, 2) {
		if res.Error != nil {
			t.Fatalf("fetch failed: %v", res.Error)
		}
	}

	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestFetchAll_CancelledContextStops(t *testing.T) {
	engine, server := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ok</body></html>"))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count := 0
	for range engine.FetchAll(ctx, []string{server.URL + "/a", server.URL + "/b"}, models.FetchOptions{}, 1) {
		count++
	}
	// Cancelled before dispatch: the channel must close without emitting
	// results for URLs that were never started.
	if count > 2 {
		t.Errorf("got %d results after cancellation", count)
	}
}

func TestFetch_CacheServesRepeatedURL(t *testing.T) {
	var hits int32
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("<html><head><title>Cached</title></head><body>x</body></html>"))
	})

	engine := New(Options{
		Timeout:   10 * time.Second,
		UserAgent: "sgai-test/1.0",
		Cache:     cache.NewMemoryCache(1024 * 1024),
	})
	defer engine.Close()

	for i := 0; i < 3; i++ {
		if _, err := engine.Fetch(context.Background(), models.FetchOptions{URL: server.URL}); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("origin hit %d times, want 1", n)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<html><head><title>OK</title></head><body>x</body></html>"))
	})

	engine := New(Options{Timeout: 10 * time.Second, UserAgent: "sgai-test/1.0"})
	defer engine.Close()

	data, err := engine.Fetch(context.Background(), models.FetchOptions{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if data.Title != "OK" {
		t.Errorf("Title = %q, want OK", data.Title)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("origin hit %d times, want 2", n)
	}
}
