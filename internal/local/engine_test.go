package local

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/law-makers/sgai/pkg/models"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Sample Page</title>
	<script>var tracked = true;</script>
	<style>body { color: red; }</style>
</head>
<body>
	<h1>Welcome</h1>
	<p>Read the <a href="/docs">documentation</a> or visit
	<a href="https://other.example.com">another site</a>.</p>
	<img src="/logo.png" alt="logo">
</body>
</html>`

func newTestEngine(t *testing.T, handler http.Handler) (*Engine, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	engine := New(Options{
		Timeout:   10 * time.Second,
		UserAgent: "sgai-test/1.0",
	})
	return engine, server
}

func TestFetch_StaticPage(t *testing.T) {
	var gotUA string
	engine, server := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))

	data, err := engine.Fetch(context.Background(), models.FetchOptions{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotUA != "sgai-test/1.0" {
		t.Errorf("User-Agent = %q, want sgai-test/1.0", gotUA)
	}
	if data.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", data.StatusCode)
	}
	if data.Title != "Sample Page" {
		t.Errorf("Title = %q, want Sample Page", data.Title)
	}
	if len(data.Links) != 2 {
		t.Errorf("Links = %v, want 2 entries", data.Links)
	}

	// Relative links must be resolved to absolute URLs
	if len(data.Links) > 0 && !strings.HasPrefix(data.Links[0], server.URL) {
		t.Errorf("Links[0] = %q, want absolute URL under %s", data.Links[0], server.URL)
	}
}

func TestFetch_MarkdownConversion(t *testing.T) {
	engine, server := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))

	data, err := engine.Fetch(context.Background(), models.FetchOptions{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(data.Markdown, "# Welcome") {
		t.Errorf("Markdown missing heading:\n%s", data.Markdown)
	}
	if strings.Contains(data.Markdown, "tracked") || strings.Contains(data.Markdown, "color: red") {
		t.Errorf("Markdown leaked script/style content:\n%s", data.Markdown)
	}
	if !strings.Contains(data.Markdown, server.URL+"/docs") {
		t.Errorf("Markdown link not resolved against base URL:\n%s", data.Markdown)
	}
}

func TestFetch_CustomHeaders(t *testing.T) {
	var gotHeader string
	engine, server := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Custom")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))

	_, err := engine.Fetch(context.Background(), models.FetchOptions{
		URL:     server.URL,
		Headers: map[string]string{"X-Custom": "value"},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotHeader != "value" {
		t.Errorf("X-Custom = %q, want value", gotHeader)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	engine := New(Options{})
	for _, u := range []string{"", "ftp://example.com", "not-a-url"} {
		if _, err := engine.Fetch(context.Background(), models.FetchOptions{URL: u}); err == nil {
			t.Errorf("Fetch(%q) succeeded, want error", u)
		}
	}
}

func TestCleanHTML_StripsUnwantedTags(t *testing.T) {
	cleaned, err := CleanHTML(samplePage)
	if err != nil {
		t.Fatalf("CleanHTML failed: %v", err)
	}
	for _, forbidden := range []string{"<script", "<style", "tracked"} {
		if strings.Contains(cleaned, forbidden) {
			t.Errorf("CleanHTML output contains %q", forbidden)
		}
	}
	if !strings.Contains(cleaned, "<h1>") {
		t.Errorf("CleanHTML stripped content tags:\n%s", cleaned)
	}
}

func TestToMarkdown_PreservesLinkTitles(t *testing.T) {
	md, err := ToMarkdown(`<p><a href="/x" title="The X">x</a></p>`, "https://example.com")
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if !strings.Contains(md, `[x](https://example.com/x) "The X"`) {
		t.Errorf("ToMarkdown = %q, want resolved link with title", md)
	}
}
