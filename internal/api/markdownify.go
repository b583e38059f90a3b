// internal/api/markdownify.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitMarkdownify starts a page-to-markdown conversion job
func (c *Client) SubmitMarkdownify(ctx context.Context, req models.MarkdownifyRequest) (*models.JobResponse, error) {
	if req.WebsiteURL == "" {
		return nil, fmt.Errorf("website_url is required")
	}
	var resp models.JobResponse
	if err := c.post(ctx, "/markdownify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMarkdownify fetches the current status of a markdownify job
func (c *Client) GetMarkdownify(ctx context.Context, requestID string) (*models.JobResponse, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	var resp models.JobResponse
	if err := c.get(ctx, "/markdownify/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Markdownify submits a conversion job and polls until it finishes
func (c *Client) Markdownify(ctx context.Context, req models.MarkdownifyRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitMarkdownify(ctx, req)
	if err != nil {
		return nil, err
	}
	if res := completedResult(submitted); res != nil {
		return res, nil
	}
	return c.waitJob(ctx, submitted.RequestID, cfg, c.GetMarkdownify)
}
