package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/service/worker"
	"github.com/m-mizutani/gt"
)

func TestCrisisMonitorRunOnce(t *testing.T) {
	t.Run("propagates refresher error", func(t *testing.T) {
		m := worker.NewCrisisMonitor(worker.RefresherFunc(func(ctx context.Context) error {
			return errors.New("upstream down")
		}))
		gt.Value(t, m.RunOnce(context.Background())).NotNil()
	})

	t.Run("applies cycle timeout", func(t *testing.T) {
		var deadline time.Time
		m := worker.NewCrisisMonitor(worker.RefresherFunc(func(ctx context.Context) error {
			deadline, _ = ctx.Deadline()
			return nil
		}), worker.WithCycleTimeout(time.Second))

		gt.NoError(t, m.RunOnce(context.Background())).Required()
		gt.Bool(t, time.Until(deadline) <= time.Second).True()
	})
}

func TestCrisisMonitorStartStop(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 1)
	m := worker.NewCrisisMonitor(worker.RefresherFunc(func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			done <- struct{}{}
		}
		return nil
	}), worker.WithSchedule("@every 1h"))

	gt.NoError(t, m.Start(context.Background())).Required()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("initial cycle did not run")
	}

	gt.Value(t, m.Start(context.Background())).NotNil()
	m.Stop()
	m.Stop()
	gt.Number(t, calls.Load()).Equal(1)
}

func TestCrisisMonitorStopWaitsForInitialCycle(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	m := worker.NewCrisisMonitor(worker.RefresherFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
		return nil
	}), worker.WithSchedule("@every 1h"))

	gt.NoError(t, m.Start(context.Background())).Required()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("initial cycle did not run")
	}

	m.Stop()
	gt.Bool(t, finished.Load()).True()
}

func TestCrisisMonitorInvalidSchedule(t *testing.T) {
	m := worker.NewCrisisMonitor(worker.RefresherFunc(func(ctx context.Context) error { return nil }),
		worker.WithSchedule("not a schedule"))
	gt.Value(t, m.Start(context.Background())).NotNil()
}
