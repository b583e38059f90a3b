// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/law-makers/sgai/internal/api"
	"github.com/law-makers/sgai/internal/auth"
	"github.com/law-makers/sgai/internal/cache"
	"github.com/law-makers/sgai/internal/config"
	"github.com/law-makers/sgai/internal/local"
	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/internal/ratelimit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// The API client and the local fetch engine are created lazily: commands
// that never talk to the service (or never fetch locally) should not pay
// for either.
type Application struct {
	Config *config.Config
	Logger *zerolog.Logger

	mu     sync.Mutex
	api    *api.Client
	local  *local.Engine
	apiKey string

	startTime time.Time
}

// New creates an Application and configures global logging.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	// Treat "info" as non-verbose (don't display info logs unless -v is used)
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	return &Application{
		Config:    cfg,
		Logger:    &logger,
		startTime: time.Now(),
	}, nil
}

// ResolveAPIKey returns the API key from config (flag or environment), or
// falls back to the stored credential. An empty return means no key is
// configured anywhere.
func (a *Application) ResolveAPIKey() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resolveAPIKeyLocked()
}

func (a *Application) resolveAPIKeyLocked() string {
	if a.apiKey != "" {
		return a.apiKey
	}
	if a.Config.APIKey != "" {
		a.apiKey = a.Config.APIKey
		return a.apiKey
	}
	if key, err := auth.LoadAPIKey(); err == nil && key != "" {
		a.Logger.Debug().Msg("API key loaded from credential store")
		a.apiKey = key
	}
	return a.apiKey
}

// API returns the shared service client, creating it on first use.
// It fails when no API key can be resolved.
func (a *Application) API() (*api.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.api != nil {
		return a.api, nil
	}

	key := a.resolveAPIKeyLocked()
	if key == "" {
		return nil, fmt.Errorf("no API key configured: set --api-key, SGAI_API_KEY, or run 'sgai auth login'")
	}

	client, err := api.NewClient(api.Options{
		APIKey:            key,
		BaseURL:           a.Config.BaseURL,
		UserAgent:         a.Config.UserAgent,
		Timeout:           a.Config.HTTPTimeout,
		RequestsPerSecond: a.Config.RateLimitRPS,
		Burst:             a.Config.RateLimitBurst,
	})
	if err != nil {
		return nil, err
	}

	a.Logger.Debug().
		Str("base_url", a.Config.BaseURL).
		Dur("timeout", a.Config.HTTPTimeout).
		Msg("API client initialized")

	a.api = client
	return a.api, nil
}

// Local returns the shared local fetch engine, creating it on first use.
func (a *Application) Local() *local.Engine {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.local == nil {
		a.local = local.New(local.Options{
			Timeout:    a.Config.HTTPTimeout,
			UserAgent:  a.Config.UserAgent,
			ChromePath: a.Config.ChromePath,
			Headless:   a.Config.BrowserHeadless,
			Limiter:    ratelimit.NewDomainLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst),
			Cache:      cache.NewMemoryCache(a.Config.CacheMaxSizeBytes),
			Proxies:    a.Config.Proxies,
		})
		a.Logger.Debug().Msg("Local fetch engine initialized")
	}
	return a.local
}

// PollConfig builds the polling configuration from application settings.
func (a *Application) PollConfig() poller.Config {
	cfg := poller.DefaultConfig()
	if a.Config.PollMaxAttempts > 0 {
		cfg.MaxAttempts = a.Config.PollMaxAttempts
	}
	if a.Config.PollInitialDelay > 0 {
		cfg.InitialDelay = a.Config.PollInitialDelay
	}
	if a.Config.PollBaseDelay > 0 {
		cfg.BaseDelay = a.Config.PollBaseDelay
	}
	if a.Config.PollMaxDelay > 0 {
		cfg.MaxDelay = a.Config.PollMaxDelay
	}
	if a.Config.PollIncrement > 0 {
		cfg.BackoffIncrement = a.Config.PollIncrement
	}
	return cfg
}

// Close gracefully shuts down the application and all its resources.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down")

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.local != nil {
		a.local.Close()
	}

	uptime := time.Since(a.startTime)
	a.Logger.Debug().Dur("uptime", uptime).Msg("Shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
