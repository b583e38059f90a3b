package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel         = "info"
	DefaultJSONLog          = false
	DefaultBaseURL          = "https://api.scrapegraphai.com/v1"
	DefaultUserAgent        = "sgai/1.0 (https://github.com/law-makers/sgai)"
	DefaultHTTPTimeout      = 120 * time.Second
	DefaultRateLimitRPS     = 2.0
	DefaultRateLimitBurst   = 5
	DefaultPollMaxAttempts  = 15
	DefaultPollInitialDelay = 10 * time.Second
	DefaultPollBaseDelay    = 5 * time.Second
	DefaultPollMaxDelay     = 60 * time.Second
	DefaultPollIncrement    = 5 * time.Second
	DefaultMaxPollAttempts  = 60
	DefaultBrowserHeadless  = true

	// DefaultCacheMaxSizeBytes bounds the local engine's in-memory page cache
	DefaultCacheMaxSizeBytes = int64(100 * 1024 * 1024)
)
