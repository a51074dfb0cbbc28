package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"game_duration/internal/domain"
	"game_duration/internal/service"
)

// Runner is one resumable pipeline pass.
type Runner interface {
	Run(ctx context.Context, req service.RunRequest) (*domain.RunStats, error)
}

// ErrMaxRuns is returned when the run budget is spent before every key is done.
var ErrMaxRuns = errors.New("run limit reached before fetch completed")

// Scheduler reruns the pipeline until every checkpoint key is done. Each pass
// resumes from the checkpoints the previous one left behind, so a transient
// upstream failure costs one interval instead of the whole job.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	maxRuns  int
	logger   *slog.Logger
}

func NewScheduler(runner Runner, interval time.Duration, maxRuns int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		maxRuns:  maxRuns,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start runs passes until one completes, ctx ends, a pass fails with a
// non-transient error, or maxRuns passes (0 for no limit) have been made.
func (s *Scheduler) Start(ctx context.Context, req service.RunRequest) (*domain.RunStats, error) {
	s.logger.Info("scheduler started", "interval", s.interval, "max_runs", s.maxRuns)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for pass := 1; ; pass++ {
		stats, err := s.runner.Run(ctx, req)
		if err != nil {
			return stats, err
		}
		if stats.Complete() {
			s.logger.Info("all checkpoints done", "passes", pass)
			return stats, nil
		}
		if ctx.Err() != nil {
			s.logger.Info("scheduler stopped")
			return stats, ctx.Err()
		}
		if s.maxRuns > 0 && pass >= s.maxRuns {
			return stats, ErrMaxRuns
		}

		s.logger.Info("fetch incomplete, waiting for next pass", "pass", pass, "next_in", s.interval)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return stats, ctx.Err()
		case <-ticker.C:
		}
	}
}
