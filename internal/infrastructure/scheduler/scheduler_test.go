//go:build unit
// +build unit

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"medguard_service/internal/pkg/config"
	pkgTesting "medguard_service/internal/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, settings config.SchedulerSettings) *Scheduler {
	t.Helper()

	s, err := NewScheduler(settings, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)
	return s
}

func TestNewScheduler_UnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.SchedulerSettings{
		Timezone: "Mars/Olympus_Mons",
	}, pkgTesting.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestScheduler_Register_InvalidSpec(t *testing.T) {
	s := newTestScheduler(t, config.SchedulerSettings{Workers: 1})

	err := s.Register(Job{
		Name: "bad",
		Spec: "not-a-spec",
		Run:  func(ctx context.Context) error { return nil },
	})
	assert.Error(t, err)
}

func TestScheduler_Register_MissingRun(t *testing.T) {
	s := newTestScheduler(t, config.SchedulerSettings{Workers: 1})

	err := s.Register(Job{Name: "empty", Spec: "* * * * *"})
	assert.Error(t, err)
}

func TestScheduler_ExecutesEnqueuedTask(t *testing.T) {
	s := newTestScheduler(t, config.SchedulerSettings{Workers: 1})

	var runs atomic.Int32
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.enqueue(task{
		name: "once",
		run: func(ctx context.Context) error {
			runs.Add(1)
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
	assert.Equal(t, int32(1), runs.Load())

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
}

func TestScheduler_RetriesFailedTask(t *testing.T) {
	s := newTestScheduler(t, config.SchedulerSettings{Workers: 1, RetryMax: 2})

	var attempts atomic.Int32
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.enqueue(task{
		name: "flaky",
		run: func(ctx context.Context) error {
			if attempts.Add(1) < 3 {
				return errors.New("transient failure")
			}
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("task was not retried to success")
	}
	assert.Equal(t, int32(3), attempts.Load())

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
}

func TestScheduler_StopWaitsForWorkers(t *testing.T) {
	s := newTestScheduler(t, config.SchedulerSettings{Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.NoError(t, s.Stop(stopCtx))

	// Stopping twice is a no-op.
	assert.NoError(t, s.Stop(stopCtx))
}
