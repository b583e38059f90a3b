// internal/local/engine.go
package local

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/sgai/internal/cache"
	"github.com/law-makers/sgai/internal/proxy"
	"github.com/law-makers/sgai/internal/ratelimit"
	"github.com/law-makers/sgai/internal/reqctx"
	"github.com/law-makers/sgai/internal/retry"
	urlutil "github.com/law-makers/sgai/internal/utils/url"
	"github.com/law-makers/sgai/pkg/models"
)

// Engine fetches and converts pages on the local machine, without spending
// API credits. Static pages go through plain HTTP; pages that need
// JavaScript go through headless Chrome.
type Engine struct {
	client    *http.Client
	limiter   ratelimit.RateLimiter
	pages     cache.Cache
	proxies   *proxy.ProxyPool
	userAgent string

	chromePath string
	headless   bool
}

// Options configures a local Engine
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	ChromePath string
	Headless   bool
	Limiter    ratelimit.RateLimiter

	// Cache, if set, serves repeated URLs without refetching.
	Cache cache.Cache

	// Proxies rotate across static fetches. Empty means direct connections.
	Proxies []string
}

// New creates a local Engine
func New(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	var pool *proxy.ProxyPool
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if len(opts.Proxies) > 0 {
		pool = proxy.NewPool(opts.Proxies)
		transport.Proxy = func(req *http.Request) (*url.URL, error) {
			next := pool.GetNext()
			if next == "" {
				return nil, nil
			}
			return url.Parse(next)
		}
	}

	return &Engine{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		limiter:    opts.Limiter,
		pages:      opts.Cache,
		proxies:    pool,
		userAgent:  opts.UserAgent,
		chromePath: opts.ChromePath,
		headless:   opts.Headless,
	}
}

// Close releases idle connections held by the engine's HTTP client.
func (e *Engine) Close() {
	if e.client != nil {
		e.client.CloseIdleConnections()
	}
	if e.pages != nil {
		e.pages.Close()
	}
}

// Fetch retrieves a page and converts it to markdown. RenderJS switches to
// the headless-Chrome path.
func (e *Engine) Fetch(ctx context.Context, opts models.FetchOptions) (*models.PageData, error) {
	if err := urlutil.ValidateURL(opts.URL); err != nil {
		return nil, err
	}

	ctx = reqctx.WithFetch(ctx, opts.URL)
	rc := reqctx.FromContext(ctx)

	if e.pages != nil {
		if data, ok := e.pages.Get(opts.URL); ok {
			return data, nil
		}
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, opts.URL); err != nil {
			return nil, err
		}
	}

	var (
		rawHTML    string
		statusCode int
		headers    map[string]string
		err        error
	)

	start := time.Now()
	if opts.RenderJS {
		rawHTML, err = e.render(ctx, opts)
		statusCode = http.StatusOK
	} else {
		rawHTML, statusCode, headers, err = e.fetchStatic(ctx, opts)
	}
	if err != nil {
		return nil, reqctx.WrapError(ctx, err)
	}

	data := &models.PageData{
		URL:          opts.URL,
		StatusCode:   statusCode,
		HTML:         rawHTML,
		Headers:      headers,
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	data.Title = strings.TrimSpace(doc.Find("title").First().Text())
	extractLinks(doc, data)
	urlutil.ResolveRelativeLinks(data)

	data.Markdown, err = ToMarkdown(rawHTML, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("markdown conversion failed: %w", err)
	}

	if e.pages != nil {
		e.pages.Set(opts.URL, data, 0)
	}

	log.Debug().
		Str("request_id", rc.RequestID).
		Str("url", opts.URL).
		Int("status", statusCode).
		Int("links", len(data.Links)).
		Int64("response_time_ms", data.ResponseTime).
		Dur("total", rc.Elapsed()).
		Bool("render_js", opts.RenderJS).
		Msg("Local fetch completed")

	return data, nil
}

func (e *Engine) fetchStatic(ctx context.Context, opts models.FetchOptions) (string, int, map[string]string, error) {
	var (
		rawHTML    string
		statusCode int
		headers    map[string]string
	)

	retryCfg := retry.DefaultConfig()
	err := retry.WithRetry(ctx, retryCfg, func() error {
		var ferr error
		rawHTML, statusCode, headers, ferr = e.fetchStaticOnce(ctx, opts)
		if ferr != nil && e.proxies != nil {
			// A failed request poisons the proxy it went through; rotation
			// picks a different one on retry.
			e.proxies.MarkFailed(e.proxies.Current())
		}
		return ferr
	})
	if err != nil {
		return "", 0, nil, err
	}
	return rawHTML, statusCode, headers, nil
}

func (e *Engine) fetchStaticOnce(ctx context.Context, opts models.FetchOptions) (string, int, map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return "", 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = e.userAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", 0, nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return "", 0, nil, retry.NewHTTPError(resp.StatusCode, resp.Status, opts.URL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", 0, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	rawHTML, err := doc.Html()
	if err != nil {
		return "", 0, nil, fmt.Errorf("failed to serialize HTML: %w", err)
	}

	headers := make(map[string]string)
	for key, values := range resp.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	return rawHTML, resp.StatusCode, headers, nil
}

// extractLinks collects hrefs and image sources from the document
func extractLinks(doc *goquery.Document, data *models.PageData) {
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		if !seen[href] {
			seen[href] = true
			data.Links = append(data.Links, href)
		}
	})
	doc.Find("img[src]").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src != "" && !seen[src] {
			seen[src] = true
			data.Images = append(data.Images, src)
		}
	})
}
