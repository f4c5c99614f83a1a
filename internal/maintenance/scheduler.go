package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"worktime/internal/logging"
)

// Optimizer is implemented by storage that can tune itself while running
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// Scheduler runs storage maintenance on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	optimizer Optimizer
	timeout   time.Duration
	log       *slog.Logger
}

// NewScheduler registers the maintenance job. The schedule uses the standard
// five field cron syntax and an empty schedule is rejected by the caller.
func NewScheduler(schedule string, optimizer Optimizer, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Scheduler{
		cron:      cron.New(),
		optimizer: optimizer,
		timeout:   timeout,
		log:       logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.log.Info("maintenance scheduler started", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("maintenance job still running at shutdown")
	}
}

// RunOnce performs a single maintenance pass
func (s *Scheduler) RunOnce() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.optimizer.Optimize(ctx); err != nil {
		s.log.Error("maintenance failed", slog.String("error", err.Error()))
		return
	}
	s.log.Info("maintenance completed", slog.Duration("took", time.Since(start)))
}
