package models

import "encoding/json"

// SmartScraperRequest submits an AI extraction job for a single page
type SmartScraperRequest struct {
	WebsiteURL      string            `json:"website_url,omitempty"`
	WebsiteHTML     string            `json:"website_html,omitempty"`
	UserPrompt      string            `json:"user_prompt"`
	OutputSchema    json.RawMessage   `json:"output_schema,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	Cookies         map[string]string `json:"cookies,omitempty"`
	NumberOfScrolls int               `json:"number_of_scrolls,omitempty"`
	RenderHeavyJS   bool              `json:"render_heavy_js,omitempty"`
}

// SearchScraperRequest submits a multi-result web search extraction job
type SearchScraperRequest struct {
	UserPrompt   string          `json:"user_prompt"`
	NumResults   int             `json:"num_results,omitempty"`
	OutputSchema json.RawMessage `json:"output_schema,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// CrawlRequest submits a multi-page crawl job
type CrawlRequest struct {
	URL            string          `json:"url"`
	Prompt         string          `json:"prompt,omitempty"`
	DataSchema     json.RawMessage `json:"data_schema,omitempty"`
	Depth          int             `json:"depth,omitempty"`
	MaxPages       int             `json:"max_pages,omitempty"`
	SameDomainOnly bool            `json:"same_domain_only,omitempty"`
	Sitemap        bool            `json:"sitemap,omitempty"`
	// MarkdownOnly skips AI extraction and returns converted markdown per page
	MarkdownOnly bool `json:"markdown_only,omitempty"`
}

// AgenticScraperRequest submits a browser-automation job driven by
// natural-language steps
type AgenticScraperRequest struct {
	URL          string          `json:"url"`
	Steps        []string        `json:"steps"`
	UseSession   bool            `json:"use_session,omitempty"`
	UserPrompt   string          `json:"user_prompt,omitempty"`
	OutputSchema json.RawMessage `json:"output_schema,omitempty"`
	AIExtraction bool            `json:"ai_extraction,omitempty"`
}

// MarkdownifyRequest submits a page-to-markdown conversion job
type MarkdownifyRequest struct {
	WebsiteURL string            `json:"website_url"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// ScrapeRequest submits a raw HTML fetch job
type ScrapeRequest struct {
	WebsiteURL    string            `json:"website_url"`
	RenderHeavyJS bool              `json:"render_heavy_js,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
}

// GenerateSchemaRequest asks the service to infer an output schema from a
// natural-language prompt
type GenerateSchemaRequest struct {
	UserPrompt     string          `json:"user_prompt"`
	ExistingSchema json.RawMessage `json:"existing_schema,omitempty"`
}

// SitemapRequest fetches the discovered sitemap of a site
type SitemapRequest struct {
	WebsiteURL string `json:"website_url"`
}

// FeedbackRequest rates the result of a previous request
type FeedbackRequest struct {
	RequestID    string `json:"request_id"`
	Rating       int    `json:"rating"`
	FeedbackText string `json:"feedback_text,omitempty"`
}

// JobResponse is the common envelope for request-id based async services
// (smartscraper, searchscraper, markdownify, scrape, agentic scraper,
// generate_schema)
type JobResponse struct {
	RequestID string          `json:"request_id"`
	Status    string          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// SearchScraperResponse extends the job envelope with the URLs the answer
// was merged from
type SearchScraperResponse struct {
	JobResponse
	ReferenceURLs []string `json:"reference_urls,omitempty"`
	MergedResult  bool     `json:"merged_result,omitempty"`
}

// CrawlResponse is the envelope for crawl jobs, which are addressed by
// task id and report "success"/"failed" instead of "completed"
type CrawlResponse struct {
	TaskID string          `json:"task_id"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SchemaResponse is the envelope for schema-generation jobs
type SchemaResponse struct {
	RequestID       string          `json:"request_id"`
	Status          string          `json:"status"`
	GeneratedSchema json.RawMessage `json:"generated_schema,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// SitemapResponse lists the URLs discovered in a site's sitemap
type SitemapResponse struct {
	URLs []string `json:"urls"`
}

// CreditsResponse reports the account's credit balance
type CreditsResponse struct {
	RemainingCredits int `json:"remaining_credits"`
	TotalCreditsUsed int `json:"total_credits_used"`
}

// HealthResponse reports service availability
type HealthResponse struct {
	Status string `json:"status"`
}

// ValidateResponse reports whether the configured API key is accepted
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
}

// FeedbackResponse acknowledges a submitted rating
type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
