package seed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sangkips/invoicely-api/pkg/metrics"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned by RunOnce while another run is in progress
var ErrAlreadyRunning = errors.New("reseed already running")

// Runner performs one reseed
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// SchedulerConfig controls the reseed cadence
type SchedulerConfig struct {
	Interval   time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Status is a snapshot of the scheduler counters
type Status struct {
	Started    bool       `json:"started"`
	Seeding    bool       `json:"seeding"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	RunCount   int        `json:"run_count"`
	ErrorCount int        `json:"error_count"`
}

// Scheduler runs a reseed at start and then on every interval tick
type Scheduler struct {
	runner  Runner
	cfg     SchedulerConfig
	log     *zap.Logger
	metrics *metrics.Metrics

	started atomic.Bool
	seeding atomic.Bool

	mu         sync.Mutex
	lastRun    time.Time
	runCount   int
	errorCount int
}

// NewScheduler creates a scheduler. MaxRetries below 1 is treated as 1.
func NewScheduler(runner Runner, cfg SchedulerConfig, log *zap.Logger, m *metrics.Metrics) *Scheduler {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{runner: runner, cfg: cfg, log: log, metrics: m}
}

// Start launches the scheduling goroutine. The returned channel is closed once
// ctx is cancelled and any in-flight run has returned.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if !s.started.CompareAndSwap(false, true) {
		s.log.Warn("reseed scheduler already started")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		defer s.started.Store(false)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		s.log.Info("reseed scheduler started", zap.Duration("interval", s.cfg.Interval))
		s.tick(ctx)

		for {
			select {
			case <-ctx.Done():
				s.log.Info("reseed scheduler shutting down")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
	return done
}

func (s *Scheduler) tick(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
		s.log.Error("scheduled reseed failed after all retries", zap.Error(err))
	}
}

// RunOnce performs a reseed with retries. A concurrent call returns ErrAlreadyRunning.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.seeding.CompareAndSwap(false, true) {
		s.log.Warn("previous reseed still running, skipping this cycle")
		s.metrics.SeedRun(metrics.SeedResultSkipped)
		return ErrAlreadyRunning
	}
	defer s.seeding.Store(false)

	var err error
	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		var result *Result
		result, err = s.runner.Run(ctx)
		if err == nil {
			s.mu.Lock()
			s.runCount++
			s.lastRun = time.Now()
			s.mu.Unlock()

			s.metrics.SeedRun(metrics.SeedResultSuccess)
			s.log.Info("reseed completed",
				zap.Int("attempt", attempt),
				zap.Int("products", result.Products),
				zap.Int("invoices", result.Invoices),
				zap.Int("receipts", result.Receipts),
			)
			return nil
		}

		s.mu.Lock()
		s.errorCount++
		s.mu.Unlock()
		s.log.Warn("reseed attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", s.cfg.MaxRetries),
			zap.Error(err),
		)

		if attempt == s.cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			s.metrics.SeedRun(metrics.SeedResultFailure)
			return ctx.Err()
		case <-time.After(s.cfg.RetryDelay):
		}
	}

	s.metrics.SeedRun(metrics.SeedResultFailure)
	return err
}

// Status returns the current counters
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Started:    s.started.Load(),
		Seeding:    s.seeding.Load(),
		RunCount:   s.runCount,
		ErrorCount: s.errorCount,
	}
	if !s.lastRun.IsZero() {
		last := s.lastRun
		next := last.Add(s.cfg.Interval)
		st.LastRun = &last
		st.NextRun = &next
	}
	return st
}
