// internal/api/client.go
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

const (
	// DefaultBaseURL is the hosted extraction API endpoint
	DefaultBaseURL = "https://api.scrapegraphai.com/v1"
	// APIKeyHeader carries the opaque API key on every request
	APIKeyHeader = "SGAI-APIKEY"
)

// Client is a thin HTTP client for the extraction API. All async services
// share one submit/status shape; polling is delegated to the poller package.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// Options configures a Client
type Options struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Client-side request throttle. Zero disables throttling.
	RequestsPerSecond float64
	Burst             int
}

// NewClient creates an API client with the supplied options.
// The API key is required; everything else has defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetTimeout(opts.Timeout)
	client.SetHeader(APIKeyHeader, opts.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	c := &Client{http: client}

	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return c.limiter.Wait(req.Context())
		})
	}

	log.Debug().
		Str("base_url", opts.BaseURL).
		Dur("timeout", opts.Timeout).
		Msg("API client initialized")

	return c, nil
}

// post sends a JSON body and decodes the response into out.
// The response is decoded as JSON regardless of the advertised content
// type; a mislabeled body must never decode to a zero-valued struct.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		ForceContentType("application/json").
		Post(path)
	return c.check(resp, err, path)
}

// get decodes a GET response into out
func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		ForceContentType("application/json").
		Get(path)
	return c.check(resp, err, path)
}

// check converts transport failures and error status codes into classified
// API errors
func (c *Client) check(resp *resty.Response, err error, path string) error {
	if err != nil {
		return &Error{
			StatusCode: 0,
			Message:    fmt.Sprintf("request to %s failed", path),
			Underlying: err,
		}
	}
	if resp.IsError() {
		apiErr := parseErrorBody(resp.Body())
		log.Debug().
			Int("status", resp.StatusCode()).
			Str("path", path).
			Str("error", apiErr).
			Msg("API returned error status")
		return &Error{
			StatusCode: resp.StatusCode(),
			Message:    apiErr,
		}
	}
	return nil
}

// waitJob drives the poller over a request-id based status endpoint
func (c *Client) waitJob(ctx context.Context, handle string, cfg poller.Config,
	get func(ctx context.Context, id string) (*models.JobResponse, error)) (*poller.Result, error) {

	fetch := func(ctx context.Context, id string) (*poller.Status, error) {
		resp, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		return &poller.Status{
			State:  resp.Status,
			Result: resp.Result,
			Error:  resp.Error,
		}, nil
	}
	return poller.Poll(ctx, handle, fetch, cfg)
}

// completedResult short-circuits polling when a submission already carries
// a terminal payload (small pages often finish synchronously)
func completedResult(resp *models.JobResponse) *poller.Result {
	switch strings.ToLower(resp.Status) {
	case "completed", "success":
		return &poller.Result{
			Outcome:  poller.OutcomeSuccess,
			Payload:  resp.Result,
			Attempts: 0,
		}
	case "failed", "error":
		return &poller.Result{
			Outcome:  poller.OutcomeFailed,
			Err:      resp.Error,
			Cause:    poller.ErrJobFailed,
			Attempts: 0,
		}
	}
	return nil
}
