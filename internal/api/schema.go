// internal/api/schema.go
package api

import (
	"context"
	"fmt"

	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/pkg/models"
)

// SubmitGenerateSchema asks the service to infer an extraction schema from
// a natural-language prompt
func (c *Client) SubmitGenerateSchema(ctx context.Context, req models.GenerateSchemaRequest) (*models.SchemaResponse, error) {
	if req.UserPrompt == "" {
		return nil, fmt.Errorf("user_prompt is required")
	}
	var resp models.SchemaResponse
	if err := c.post(ctx, "/generate_schema", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGenerateSchema fetches the current status of a schema-generation job
func (c *Client) GetGenerateSchema(ctx context.Context, requestID string) (*models.SchemaResponse, error) {
	if requestID == "" {
		return nil, fmt.Errorf("request_id is required")
	}
	var resp models.SchemaResponse
	if err := c.get(ctx, "/generate_schema/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateSchema submits a schema-generation job and polls until it finishes
func (c *Client) GenerateSchema(ctx context.Context, req models.GenerateSchemaRequest, cfg poller.Config) (*poller.Result, error) {
	submitted, err := c.SubmitGenerateSchema(ctx, req)
	if err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context, id string) (*poller.Status, error) {
		resp, err := c.GetGenerateSchema(ctx, id)
		if err != nil {
			return nil, err
		}
		return &poller.Status{
			State:  resp.Status,
			Result: resp.GeneratedSchema,
			Error:  resp.Error,
		}, nil
	}
	return poller.Poll(ctx, submitted.RequestID, fetch, cfg)
}
