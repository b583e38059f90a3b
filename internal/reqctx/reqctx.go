// internal/reqctx/reqctx.go

// Package reqctx tags each page fetch with a short request id so log lines
// and errors from one fetch can be correlated across the engine.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type key int

const fetchKey key = 0

// FetchContext identifies one page fetch
type FetchContext struct {
	RequestID string
	URL       string
	StartTime time.Time
}

// Elapsed reports how long the fetch has been running
func (fc *FetchContext) Elapsed() time.Duration {
	return time.Since(fc.StartTime)
}

// WithFetch derives a context tagged with a fresh request id for url
func WithFetch(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, fetchKey, &FetchContext{
		RequestID: newID(),
		URL:       url,
		StartTime: time.Now(),
	})
}

// FromContext returns the fetch tag. Untagged contexts get a placeholder
// so callers never nil-check.
func FromContext(ctx context.Context) *FetchContext {
	if fc, ok := ctx.Value(fetchKey).(*FetchContext); ok {
		return fc
	}
	return &FetchContext{
		RequestID: "untagged",
		StartTime: time.Now(),
	}
}

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// FetchError carries the fetch tag alongside the underlying failure
type FetchError struct {
	RequestID string
	URL       string
	Err       error
}

func (e *FetchError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("[%s] fetch %s: %v", e.RequestID, e.URL, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.RequestID, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// WrapError attaches the context's fetch tag to err
func WrapError(ctx context.Context, err error) error {
	fc := FromContext(ctx)
	return &FetchError{
		RequestID: fc.RequestID,
		URL:       fc.URL,
		Err:       err,
	}
}
