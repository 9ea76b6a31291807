package module

import (
	"time"

	"echobox/internal/platform/config"
)

// Options controls the sweep scheduler
type Options struct {
	Interval time.Duration
	Batch    int
}

// FromConfig reads with SWEEPER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SWEEPER_")
	return Options{
		Interval: c.MayDuration("INTERVAL", time.Hour),
		Batch:    c.MayInt("BATCH", 100),
	}
}
