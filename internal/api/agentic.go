// internal/api/agentic.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitAgenticScraper starts a browser-automation job
func (c *Client) SubmitAgenticScraper(ctx context.Context, req models.AgenticScraperRequest) (*models.JobResponse, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if len(req.Steps) == 0 {
		return nil, fmt.Errorf("at least one step is required")
	}
	if req.AIExtraction && req.UserPrompt == "" {
		return nil, fmt.Errorf("user_prompt is required when ai_extraction is set")
	}

	var resp models.JobResponse
	if err := c.post(ctx, "/agentic-scrapper", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAgenticScraper fetches the current status of an agentic scraper job
func (c *Client) GetAgenticScraper(ctx context.Context, requestID string) (*models.JobResponse, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	var resp models.JobResponse
	if err := c.get(ctx, "/agentic-scrapper/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AgenticScraper submits an automation job and polls until it finishes.
// These jobs hold a browser session open, so the default schedule waits
// longer before the first status fetch.
func (c *Client) AgenticScraper(ctx context.Context, req models.AgenticScraperRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitAgenticScraper(ctx, req)
	if err != nil {
		return nil, err
	}
	if res := completedResult(submitted); res != nil {
		return res, nil
	}
	return c.waitJob(ctx, submitted.RequestID, cfg, c.GetAgenticScraper)
}
