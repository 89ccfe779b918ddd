package scheduler

import "time"

// Config controls the billing cycle worker loop.
type Config struct {
	Enabled      bool
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		PollInterval: time.Hour,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	return c
}
