package reqctx

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFetchContextRoundTrip(t *testing.T) {
	ctx := WithFetch(context.Background(), "https://example.com/page")
	fc := FromContext(ctx)

	if fc.RequestID == "" || fc.RequestID == "untagged" {
		t.Errorf("RequestID = %q, want generated id", fc.RequestID)
	}
	if fc.URL != "https://example.com/page" {
		t.Errorf("URL = %q, want tagged fetch URL", fc.URL)
	}
	if fc.StartTime.IsZero() {
		t.Error("StartTime not set")
	}
	if fc.Elapsed() < 0 {
		t.Errorf("Elapsed = %v, want >= 0", fc.Elapsed())
	}

	// Untagged context yields a placeholder, not a panic
	if got := FromContext(context.Background()); got.RequestID != "untagged" {
		t.Errorf("RequestID = %q, want untagged", got.RequestID)
	}
}

func TestWrapError(t *testing.T) {
	ctx := WithFetch(context.Background(), "https://example.com/page")
	base := errors.New("connection refused")

	err := WrapError(ctx, base)
	if !errors.Is(err, base) {
		t.Error("wrapped error not unwrappable")
	}

	fc := FromContext(ctx)
	if !strings.Contains(err.Error(), fc.RequestID) {
		t.Errorf("error %q does not mention request id %q", err.Error(), fc.RequestID)
	}
	if !strings.Contains(err.Error(), "https://example.com/page") {
		t.Errorf("error %q does not mention the fetched URL", err.Error())
	}
}

func TestWrapError_UntaggedContext(t *testing.T) {
	err := WrapError(context.Background(), errors.New("boom"))
	if !strings.Contains(err.Error(), "untagged") {
		t.Errorf("error %q should carry the placeholder id", err.Error())
	}
}
