// internal/poller/poller.go
package poller

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Status is a snapshot of a remote job, fetched fresh on every poll
type Status struct {
	// State is the raw status string reported by the service
	// (e.g. "queued", "processing", "completed", "success", "failed")
	State string
	// Result carries the job payload once the job has finished
	Result json.RawMessage
	// Error carries the service-supplied failure detail, if any
	Error string
}

// StatusFunc fetches the current status of the job identified by handle.
// It is supplied by the API client; the poller never talks to the network
// itself.
type StatusFunc func(ctx context.Context, handle string) (*Status, error)

// Outcome is the terminal result classification of a poll
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeTimeout Outcome = "timeout"
)

// Result is the terminal outcome of polling one job handle
type Result struct {
	Outcome  Outcome
	Payload  json.RawMessage
	Err      string
	Cause    error
	Attempts int
}

// Config defines polling behavior with linear backoff
type Config struct {
	MaxAttempts int // Upper bound on status fetches

	// InitialDelay is the wait before the first fetch. Zero fetches
	// immediately: unlike the other durations it is never defaulted,
	// so start from DefaultConfig to get the standard initial wait.
	InitialDelay time.Duration

	BaseDelay        time.Duration // Starting inter-poll wait
	MaxDelay         time.Duration // Cap on the inter-poll wait
	BackoffIncrement time.Duration // Linear growth per attempt

	// Cooldown schedule applied after a rate-limited fetch
	RateLimitBase      time.Duration
	RateLimitIncrement time.Duration
	RateLimitMax       time.Duration

	// Fixed pause after the first of two tolerated generic fetch errors
	TransientPause time.Duration

	// Terminal status sets. Job types disagree on the success string
	// ("completed" vs "success"), so both are recognized by default.
	SuccessStatuses []string
	FailureStatuses []string

	// Sleep overrides the suspension function; nil uses a real timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnAttempt, if set, is called after every status fetch with the
	// 1-based attempt number and the observed state ("" on fetch error).
	// Used by the CLI to animate progress.
	OnAttempt func(attempt int, state string)
}

// DefaultConfig returns a sensible default polling configuration
func DefaultConfig() Config {
	return Config{
		MaxAttempts:        15,
		InitialDelay:       10 * time.Second,
		BaseDelay:          5 * time.Second,
		MaxDelay:           60 * time.Second,
		BackoffIncrement:   5 * time.Second,
		RateLimitBase:      45 * time.Second,
		RateLimitIncrement: 10 * time.Second,
		RateLimitMax:       90 * time.Second,
		TransientPause:     5 * time.Second,
		SuccessStatuses:    []string{"completed", "success"},
		FailureStatuses:    []string{"failed", "error"},
	}
}

// normalize fills zero-valued fields from the defaults. InitialDelay is
// exempt: zero there means "fetch immediately" and must survive.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = def.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	if c.BackoffIncrement < 0 {
		c.BackoffIncrement = def.BackoffIncrement
	}
	if c.RateLimitBase <= 0 {
		c.RateLimitBase = def.RateLimitBase
	}
	if c.RateLimitIncrement < 0 {
		c.RateLimitIncrement = def.RateLimitIncrement
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = def.RateLimitMax
	}
	if c.TransientPause <= 0 {
		c.TransientPause = def.TransientPause
	}
	if len(c.SuccessStatuses) == 0 {
		c.SuccessStatuses = def.SuccessStatuses
	}
	if len(c.FailureStatuses) == 0 {
		c.FailureStatuses = def.FailureStatuses
	}
	if c.Sleep == nil {
		c.Sleep = sleepTimer
	}
	return c
}

// sleepTimer suspends for d or until the context is cancelled
func sleepTimer(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll drives a bounded polling loop for one job handle until a terminal
// status, attempt exhaustion, or an unrecoverable fetch error.
//
// Each iteration performs exactly one status fetch. A non-terminal status
// suspends for a linearly increasing delay; a rate-limited fetch suspends
// for a longer cooldown without counting toward the generic-error tolerance.
// Context cancellation interrupts any suspension deterministically.
func Poll(ctx context.Context, handle string, fetch StatusFunc, cfg Config) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(handle) == "" {
		return nil, ErrInvalidHandle
	}
	if fetch == nil {
		return nil, ErrInvalidHandle
	}

	cfg = cfg.normalize()

	if cfg.InitialDelay > 0 {
		log.Debug().
			Str("handle", handle).
			Dur("initial_delay", cfg.InitialDelay).
			Msg("Waiting before first poll")
		if err := cfg.Sleep(ctx, cfg.InitialDelay); err != nil {
			return nil, err
		}
	}

	consecutiveErrs := 0

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		status, err := fetch(ctx, handle)

		if cfg.OnAttempt != nil {
			state := ""
			if err == nil && status != nil {
				state = status.State
			}
			cfg.OnAttempt(attempt+1, state)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			if IsRateLimited(err) {
				if attempt < cfg.MaxAttempts-1 {
					cooldown := rateLimitDelay(attempt, cfg)
					log.Warn().
						Str("handle", handle).
						Int("attempt", attempt+1).
						Dur("cooldown", cooldown).
						Msg("Rate limited, extending wait")
					if serr := cfg.Sleep(ctx, cooldown); serr != nil {
						return nil, serr
					}
				}
				continue
			}

			consecutiveErrs++
			if consecutiveErrs >= 2 || attempt >= cfg.MaxAttempts-1 {
				log.Error().
					Str("handle", handle).
					Int("attempt", attempt+1).
					Err(err).
					Msg("Status fetch failed repeatedly")
				return &Result{
					Outcome:  OutcomeFailed,
					Err:      err.Error(),
					Cause:    err,
					Attempts: attempt + 1,
				}, nil
			}

			log.Debug().
				Str("handle", handle).
				Int("attempt", attempt+1).
				Err(err).
				Msg("Status fetch failed, retrying once")
			if serr := cfg.Sleep(ctx, cfg.TransientPause); serr != nil {
				return nil, serr
			}
			continue
		}

		consecutiveErrs = 0

		state := strings.ToLower(strings.TrimSpace(status.State))
		switch {
		case containsStatus(cfg.SuccessStatuses, state):
			log.Debug().
				Str("handle", handle).
				Int("attempts", attempt+1).
				Msg("Job completed")
			return &Result{
				Outcome:  OutcomeSuccess,
				Payload:  status.Result,
				Attempts: attempt + 1,
			}, nil

		case containsStatus(cfg.FailureStatuses, state):
			log.Debug().
				Str("handle", handle).
				Int("attempts", attempt+1).
				Str("error", status.Error).
				Msg("Job failed")
			return &Result{
				Outcome:  OutcomeFailed,
				Err:      status.Error,
				Cause:    ErrJobFailed,
				Attempts: attempt + 1,
			}, nil
		}

		// Still pending or processing
		if attempt < cfg.MaxAttempts-1 {
			delay := nextDelay(attempt, cfg)
			log.Debug().
				Str("handle", handle).
				Str("status", state).
				Int("attempt", attempt+1).
				Int("max_attempts", cfg.MaxAttempts).
				Dur("delay", delay).
				Msg("Job not finished, backing off")
			if serr := cfg.Sleep(ctx, delay); serr != nil {
				return nil, serr
			}
		}
	}

	log.Warn().
		Str("handle", handle).
		Int("attempts", cfg.MaxAttempts).
		Msg("Polling attempts exhausted")

	return &Result{
		Outcome:  OutcomeTimeout,
		Err:      ErrTimeout.Error(),
		Cause:    ErrTimeout,
		Attempts: cfg.MaxAttempts,
	}, nil
}

// nextDelay computes the linear-backoff delay after attempt (0-based):
// min(MaxDelay, BaseDelay + attempt*BackoffIncrement)
func nextDelay(attempt int, cfg Config) time.Duration {
	d := cfg.BaseDelay + time.Duration(attempt)*cfg.BackoffIncrement
	if d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d
}

// rateLimitDelay computes the extended cooldown after a rate-limited fetch:
// min(RateLimitMax, RateLimitBase + attempt*RateLimitIncrement)
func rateLimitDelay(attempt int, cfg Config) time.Duration {
	d := cfg.RateLimitBase + time.Duration(attempt)*cfg.RateLimitIncrement
	if d > cfg.RateLimitMax {
		d = cfg.RateLimitMax
	}
	return d
}

func containsStatus(set []string, state string) bool {
	for _, s := range set {
		if s == state {
			return true
		}
	}
	return false
}
