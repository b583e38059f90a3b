package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// API access
	APIKey    string
	BaseURL   string
	UserAgent string

	// HTTP
	HTTPTimeout time.Duration

	// Client-side API rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Polling
	PollMaxAttempts  int
	PollInitialDelay time.Duration
	PollBaseDelay    time.Duration
	PollMaxDelay     time.Duration
	PollIncrement    time.Duration

	// Local engine
	ChromePath        string
	BrowserHeadless   bool
	CacheMaxSizeBytes int64
	Proxies           []string
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
// The API key is resolved later (flag/env here, keyring in the app layer).
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:         DefaultLogLevel,
		JSONLog:          DefaultJSONLog,
		BaseURL:          DefaultBaseURL,
		UserAgent:        DefaultUserAgent,
		HTTPTimeout:      DefaultHTTPTimeout,
		RateLimitRPS:     DefaultRateLimitRPS,
		RateLimitBurst:   DefaultRateLimitBurst,
		PollMaxAttempts:  DefaultPollMaxAttempts,
		PollInitialDelay: DefaultPollInitialDelay,
		PollBaseDelay:    DefaultPollBaseDelay,
		PollMaxDelay:     DefaultPollMaxDelay,
		PollIncrement:     DefaultPollIncrement,
		BrowserHeadless:   DefaultBrowserHeadless,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
	}

	// Override from environment variables
	if v := os.Getenv("SGAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SGAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SGAI_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("SGAI_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("SGAI_PROXY"); v != "" {
		cfg.Proxies = splitList(v)
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("api-key"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.APIKey = s
			}
		}
		if f := cmd.Flags().Lookup("base-url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.BaseURL = s
			}
		}
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("max-attempts"); f != nil {
			if s := f.Value.String(); s != "" {
				if n, err := strconv.Atoi(s); err == nil && n > 0 {
					cfg.PollMaxAttempts = n
				}
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxies = splitList(s)
			}
		}
		if f := cmd.Flags().Lookup("poll-delay"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.PollBaseDelay = d
				}
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping empty items
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
