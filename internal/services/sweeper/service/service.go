// Package service contains the sweep scheduler loop
package service

import (
	"context"
	"time"

	"echobox/internal/platform/logger"
	capsdom "echobox/internal/services/api/capsules/domain"
)

// Config carries runtime knobs for the sweep loop
type Config struct {
	Interval time.Duration
	Batch    int
}

// Svc implements the sweeper worker
type Svc struct {
	caps   capsdom.SweepPort
	log    logger.Logger
	config Config
}

// New constructs a sweeper service around the capsules sweep port
func New(caps capsdom.SweepPort, log logger.Logger, cfg Config) *Svc {
	if caps == nil {
		panic("sweeper.Service requires a non nil SweepPort")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}
	return &Svc{caps: caps, log: log, config: cfg}
}

// Run sweeps immediately, then on every tick until ctx is done
// a failed pass is logged and the loop keeps going; the next tick retries
func (s *Svc) Run(ctx context.Context) error {
	s.sweepOnce(ctx)

	t := time.NewTicker(s.config.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Svc) sweepOnce(ctx context.Context) {
	report, err := s.caps.SweepDue(ctx, s.config.Batch)
	if err != nil {
		s.log.Error().Err(err).Msg("sweep pass failed")
		return
	}
	ev := s.log.Debug()
	if report.Unlocked > 0 || report.Failed > 0 {
		ev = s.log.Info()
	}
	ev.Int("scanned", report.Scanned).
		Int("unlocked", report.Unlocked).
		Int("failed", report.Failed).
		Msg("sweep pass complete")
}
