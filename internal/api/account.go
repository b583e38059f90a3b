// internal/api/account.go
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/law-makers/sgai/pkg/models"
)

// Sitemap fetches the discovered sitemap for a site. This endpoint is
// synchronous; no polling is involved.
func (c *Client) Sitemap(ctx context.Context, req models.SitemapRequest) (*models.SitemapResponse, error) {
	if req.WebsiteURL == "" {
		return nil, fmt.Errorf("website_url is required")
	}
	var resp models.SitemapResponse
	if err := c.post(ctx, "/sitemap", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Credits reports the account's remaining credit balance
func (c *Client) Credits(ctx context.Context) (*models.CreditsResponse, error) {
	var resp models.CreditsResponse
	if err := c.get(ctx, "/credits", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks service availability
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.get(ctx, "/healthz", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthCheck checks service availability without credentials. The healthz
// endpoint does not require an API key, so this works before login.
func HealthCheck(ctx context.Context, baseURL string) (*models.HealthResponse, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var respBody models.HealthResponse
	httpResp, err := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		R().
		SetContext(ctx).
		SetResult(&respBody).
		ForceContentType("application/json").
		Get("/healthz")
	if err != nil {
		return nil, err
	}
	if httpResp.IsError() {
		return nil, &Error{
			StatusCode: httpResp.StatusCode(),
			Message:    parseErrorBody(httpResp.Body()),
		}
	}
	return &respBody, nil
}

// Validate checks whether the configured API key is accepted by the service
func (c *Client) Validate(ctx context.Context) (*models.ValidateResponse, error) {
	var resp models.ValidateResponse
	if err := c.get(ctx, "/validate", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Feedback rates the result of a previous request
func (c *Client) Feedback(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResponse, error) {
	if req.RequestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}
	var resp models.FeedbackResponse
	if err := c.post(ctx, "/feedback", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
