// internal/api/smartscraper.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitSmartScraper starts an AI extraction job for a single page
func (c *Client) SubmitSmartScraper(ctx context.Context, req models.SmartScraperRequest) (*models.JobResponse, error) {
	if req.WebsiteURL == "" && req.WebsiteHTML == "" {
		return nil, fmt.Errorf("either website_url or website_html is required")
	}
	if req.UserPrompt == "" {
		return nil, fmt.Errorf("user_prompt is required")
	}

	var resp models.JobResponse
	if err := c.post(ctx, "/smartscraper", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSmartScraper fetches the current status of a smartscraper job
func (c *Client) GetSmartScraper(ctx context.Context, requestID string) (*models.JobResponse, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	var resp models.JobResponse
	if err := c.get(ctx, "/smartscraper/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SmartScraper submits an extraction job and polls until it finishes.
// Small pages often complete synchronously; in that case no polling happens.
func (c *Client) SmartScraper(ctx context.Context, req models.SmartScraperRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitSmartScraper(ctx, req)
	if err != nil {
		return nil, err
	}
	if res := completedResult(submitted); res != nil {
		return res, nil
	}
	return c.waitJob(ctx, submitted.RequestID, cfg, c.GetSmartScraper)
}
