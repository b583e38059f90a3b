// internal/api/scrape.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitScrape starts a raw HTML fetch job
func (c *Client) SubmitScrape(ctx context.Context, req models.ScrapeRequest) (*models.JobResponse, error) {
	if req.WebsiteURL == "" {
		return nil, fmt.Errorf("website_url is required")
	}
	var resp models.JobResponse
	if err := c.post(ctx, "/scrape", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetScrape fetches the current status of a scrape job
func (c *Client) GetScrape(ctx context.Context, requestID string) (*models.JobResponse, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	var resp models.JobResponse
	if err := c.get(ctx, "/scrape/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Scrape submits a raw fetch job and polls until it finishes
func (c *Client) Scrape(ctx context.Context, req models.ScrapeRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitScrape(ctx, req)
	if err != nil {
		return nil, err
	}
	if res := completedResult(submitted); res != nil {
		return res, nil
	}
	return c.waitJob(ctx, submitted.RequestID, cfg, c.GetScrape)
}
