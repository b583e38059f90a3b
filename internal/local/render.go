// internal/local/render.go
package local

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/sgai/pkg/models"
)

// render fetches a page through headless Chrome so that JavaScript-heavy
// sites produce their final DOM before conversion
func (e *Engine) render(ctx context.Context, opts models.FetchOptions) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chromePath := e.chromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = e.userAgent
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", fmt.Sprintf("%v", e.headless)),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(ua),
	}
	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	actions := []chromedp.Action{network.Enable()}
	if len(opts.Headers) > 0 {
		headers := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = v
		}
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}

	var htmlContent string
	actions = append(actions,
		chromedp.Navigate(opts.URL),
		chromedp.WaitReady("body"),
		// Give late scripts a moment to settle
		chromedp.Sleep(500*time.Millisecond),
		chromedp.OuterHTML("html", &htmlContent),
	)

	start := time.Now()
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("headless render failed: %w", err)
	}

	log.Debug().
		Str("url", opts.URL).
		Dur("elapsed", time.Since(start)).
		Msg("Headless render completed")

	return htmlContent, nil
}
