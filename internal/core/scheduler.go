package core

// scheduler.go runs background maintenance for the session store.
//
// Sessions live only in memory. The janitor removes those that have not been
// used for the configured TTL so an abandoned browser tab does not hold its
// parsed table forever. It is long-running and stops with its context.

import (
	"context"
	"log/slog"
	"time"
)

// JanitorConfig holds configuration for the session janitor.
type JanitorConfig struct {
	Interval time.Duration // How often to sweep (default: 10m)
}

// StartJanitor sweeps expired sessions every Interval until ctx is
// cancelled. It blocks; run it in its own goroutine.
func (s *Service) StartJanitor(ctx context.Context, cfg JanitorConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	slog.Info("session janitor started",
		"interval", cfg.Interval.String(),
		"ttl", s.ttl.String(),
	)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

// runSweep performs one sweep and logs what it removed.
func (s *Service) runSweep() int {
	start := time.Now()
	removed := s.sessions.Sweep()
	if removed > 0 {
		slog.Info("expired sessions removed",
			"removed", removed,
			"remaining", s.sessions.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		slog.Debug("session sweep found nothing to remove", "remaining", s.sessions.Len())
	}
	return removed
}
