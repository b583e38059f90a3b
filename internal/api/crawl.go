// internal/api/crawl.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitCrawl starts a multi-page crawl job
func (c *Client) SubmitCrawl(ctx context.Context, req models.CrawlRequest) (*models.CrawlResponse, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if !req.MarkdownOnly && req.Prompt == "" {
		return nil, fmt.Errorf("prompt is required unless markdown_only is set")
	}

	var resp models.CrawlResponse
	if err := c.post(ctx, "/crawl", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCrawl fetches the current status of a crawl job
func (c *Client) GetCrawl(ctx context.Context, taskID string) (*models.CrawlResponse, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task_id is required")
	}
	var resp models.CrawlResponse
	if err := c.get(ctx, "/crawl/"+taskID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Crawl submits a crawl job and polls until it finishes. Crawl jobs report
// "success" rather than "completed", so the terminal set is overridden here.
func (c *Client) Crawl(ctx context.Context, req models.CrawlRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitCrawl(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(cfg.SuccessStatuses) == 0 {
		cfg.SuccessStatuses = []string{"success"}
	}

	fetch := func(ctx context.Context, id string) (*poller.Status, error) {
		resp, err := c.GetCrawl(ctx, id)
		if err != nil {
			return nil, err
		}
		return &poller.Status{
			State:  resp.Status,
			Result: resp.Result,
			Error:  resp.Error,
		}, nil
	}
	return poller.Poll(ctx, submitted.TaskID, fetch, cfg)
}
