package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule is the crisis monitoring cadence
const DefaultSchedule = "@every 5m"

// Refresher runs one monitoring cycle
type Refresher interface {
	RefreshCrises(ctx context.Context) error
}

// RefresherFunc adapts a function to Refresher
type RefresherFunc func(ctx context.Context) error

func (f RefresherFunc) RefreshCrises(ctx context.Context) error { return f(ctx) }

// CrisisMonitor polls crisis sources on a cron schedule
//
// Architecture assumptions:
// - Single instance (no distributed locking)
// - A cycle still running when the next one is due is skipped
type CrisisMonitor struct {
	refresher Refresher
	schedule  string
	timeout   time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	baseCtx context.Context
	cancel  context.CancelFunc
	cycles  sync.WaitGroup
}

// MonitorOption configures CrisisMonitor
type MonitorOption func(*CrisisMonitor)

// WithSchedule sets a cron spec such as "@every 1m" or "*/5 * * * *"
func WithSchedule(spec string) MonitorOption {
	return func(m *CrisisMonitor) {
		m.schedule = spec
	}
}

// WithCycleTimeout bounds a single monitoring cycle
func WithCycleTimeout(d time.Duration) MonitorOption {
	return func(m *CrisisMonitor) {
		m.timeout = d
	}
}

// NewCrisisMonitor creates a monitor that is idle until Start
func NewCrisisMonitor(refresher Refresher, opts ...MonitorOption) *CrisisMonitor {
	m := &CrisisMonitor{
		refresher: refresher,
		schedule:  DefaultSchedule,
		timeout:   2 * time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start runs one cycle immediately in the background and schedules the rest.
// It does not block.
func (m *CrisisMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cron != nil {
		return goerr.New("crisis monitor already started")
	}

	schedule, err := cron.ParseStandard(m.schedule)
	if err != nil {
		return goerr.Wrap(err, "invalid crisis monitor schedule", goerr.V("schedule", m.schedule))
	}

	logger := cronLogger{logger: logging.From(ctx)}
	c := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	), cron.WithLogger(logger))

	m.baseCtx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	job := c.Schedule(schedule, cron.FuncJob(m.runCycle))
	c.Start()
	m.cron = c

	logging.From(ctx).Info("Crisis monitor started", "schedule", m.schedule)

	// The first cycle goes through the same wrapped job so it is skipped
	// by a scheduled run that overlaps with it.
	go c.Entry(job).WrappedJob.Run()

	return nil
}

// Stop cancels the running cycle and waits for it to finish, including the
// initial cycle started outside the cron scheduler
func (m *CrisisMonitor) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	if c != nil {
		m.cancel()
	}
	m.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	m.cycles.Wait()
	logging.Default().Info("Crisis monitor stopped")
}

// RunOnce executes a single cycle synchronously
func (m *CrisisMonitor) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	if err := m.refresher.RefreshCrises(ctx); err != nil {
		return goerr.Wrap(err, "crisis monitoring cycle failed")
	}
	logging.From(ctx).Info("Crisis monitoring cycle completed", "duration", time.Since(start).String())
	return nil
}

func (m *CrisisMonitor) runCycle() {
	m.mu.Lock()
	ctx := m.baseCtx
	if ctx == nil || ctx.Err() != nil {
		m.mu.Unlock()
		return
	}
	m.cycles.Add(1)
	m.mu.Unlock()
	defer m.cycles.Done()

	if err := m.RunOnce(ctx); err != nil {
		errutil.Handle(ctx, err, "crisis monitoring cycle failed (will retry next schedule)")
	}
}

// cronLogger routes cron's internal logs to slog
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
