// internal/api/searchscraper.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitSearchScraper starts a search-and-extract job
func (c *Client) SubmitSearchScraper(ctx context.Context, req models.SearchScraperRequest) (*models.JobResponse, error) {
	if req.UserPrompt == "" {
		return nil, fmt.Errorf("user_prompt is required")
	}

	var resp models.JobResponse
	if err := c.post(ctx, "/searchscraper", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSearchScraper fetches the current status of a searchscraper job
func (c *Client) GetSearchScraper(ctx context.Context, requestID string) (*models.SearchScraperResponse, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	var resp models.SearchScraperResponse
	if err := c.get(ctx, "/searchscraper/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchScraper submits a search job and polls until it finishes
func (c *Client) SearchScraper(ctx context.Context, req models.SearchScraperRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitSearchScraper(ctx, req)
	if err != nil {
		return nil, err
	}
	if res := completedResult(submitted); res != nil {
		return res, nil
	}
	return c.waitJob(ctx, submitted.RequestID, cfg, func(ctx context.Context, id string) (*models.JobResponse, error) {
		resp, err := c.GetSearchScraper(ctx, id)
		if err != nil {
			return nil, err
		}
		return &resp.JobResponse, nil
	})
}
