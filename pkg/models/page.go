package models

import "time"

// PageData represents a page fetched by the local engine
type PageData struct {
	URL          string            `json:"url"`
	StatusCode   int               `json:"status_code"`
	Title        string            `json:"title,omitempty"`
	Markdown     string            `json:"markdown,omitempty"`
	HTML         string            `json:"html,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Links        []string          `json:"links,omitempty"`
	Images       []string          `json:"images,omitempty"`
	FetchedAt    time.Time         `json:"fetched_at"`
	ResponseTime int64             `json:"response_time_ms"`
}

// FetchOptions contains options for local page fetches
type FetchOptions struct {
	URL       string
	RenderJS  bool
	Headers   map[string]string
	Timeout   time.Duration
	UserAgent string
}
