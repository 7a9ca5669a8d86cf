package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Job is one recurring unit of background work.
type Job struct {
	Name string
	// Spec is a five-field cron expression, e.g. "*/5 * * * *".
	Spec string
	Run  func(ctx context.Context) error
}

type task struct {
	name string
	run  func(ctx context.Context) error
}

// Scheduler runs registered jobs on cron schedules through a bounded worker
// pool. A slow job occupies one worker; it never delays the cron ticks of the
// others. Failed runs are retried with exponential backoff and jitter.
type Scheduler struct {
	settings config.SchedulerSettings
	logger   logger.Logger

	location *time.Location
	cron     *cron.Cron
	queue    chan task
	stopCh   chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a Scheduler from the given settings
func NewScheduler(settings config.SchedulerSettings, logger logger.Logger) (*Scheduler, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler settings: %w", err)
	}

	location := time.UTC
	if settings.Timezone != "" {
		loc, err := time.LoadLocation(settings.Timezone)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", settings.Timezone, err)
		}
		location = loc
	}

	return &Scheduler{
		settings: settings,
		logger:   logger,
		location: location,
		cron:     cron.New(cron.WithLocation(location)),
		queue:    make(chan task, 64),
		stopCh:   make(chan struct{}),
	}, nil
}

// Register adds a job to the cron table. Jobs must be registered before Start.
func (s *Scheduler) Register(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %q has no run function", job.Name)
	}

	_, err := s.cron.AddFunc(job.Spec, func() {
		s.enqueue(task{name: job.Name, run: job.Run})
	})
	if err != nil {
		return fmt.Errorf("failed to register job %q with spec %q: %w", job.Name, job.Spec, err)
	}

	s.logger.Info("Registered job ", job.Name, " with spec ", job.Spec)
	return nil
}

// Start launches the worker pool and the cron loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	workers := s.settings.Workers
	if workers <= 0 {
		workers = 2
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started with ", workers, " workers")
}

// Stop halts the cron loop and waits for in-flight jobs to finish, bounded by
// the context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	cronCtx := s.cron.Stop()
	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown timed out: %w", ctx.Err())
	}
}

func (s *Scheduler) enqueue(t task) {
	select {
	case s.queue <- t:
	default:
		s.logger.Warn("Scheduler queue full, dropping run of job ", t.name)
	}
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case t := <-s.queue:
			s.execute(ctx, t)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, t task) {
	maxAttempts := 1 + s.settings.RetryMax

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.runOnce(ctx, t)
		if err == nil {
			if attempt > 1 {
				s.logger.Info("Job ", t.name, " succeeded on attempt ", attempt)
			}
			return
		}

		s.logger.Error("Job ", t.name, " attempt ", attempt, " failed: ", err)

		if attempt == maxAttempts || ctx.Err() != nil {
			return
		}

		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, t task) error {
	runCtx := ctx
	if s.settings.JobTimeoutSec > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(s.settings.JobTimeoutSec)*time.Second)
		defer cancel()
	}

	started := time.Now()
	err := t.run(runCtx)
	if err != nil {
		return err
	}

	s.logger.Info("Job ", t.name, " completed in ", time.Since(started).Round(time.Millisecond))
	return nil
}

// backoff returns 1s, 2s, 4s, ... for successive attempts, capped at 30s,
// with up to 50% jitter.
func backoff(attempt int) time.Duration {
	base := time.Second << (attempt - 1)
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base / 2)))
	return base + jitter
}
