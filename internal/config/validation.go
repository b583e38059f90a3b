package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.PollMaxAttempts <= 0 || c.PollMaxAttempts > DefaultMaxPollAttempts {
		return fmt.Errorf("poll max attempts must be between 1 and %d", DefaultMaxPollAttempts)
	}
	if c.PollBaseDelay <= 0 {
		return fmt.Errorf("poll delay must be > 0")
	}
	if c.PollMaxDelay < c.PollBaseDelay {
		return fmt.Errorf("poll max delay must be >= poll delay")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps must be >= 0")
	}
	return nil
}
