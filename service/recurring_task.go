package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"myregistry/helpers"
	"myregistry/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ErrTaskAlreadyStarted is returned by RecurringTask.Start when the task is running.
var ErrTaskAlreadyStarted = errors.New("recurring task already started")

// RecurringTask runs fn every interval on its own goroutine until Stop or until the Start context is done.
// The first run happens one interval after Start. fn receives a context that is cancelled by Stop.
type RecurringTask struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)
	logger   log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRecurringTask creates a stopped task. Panics on nil fn or logger and on a non-positive interval.
func NewRecurringTask(name string, interval time.Duration, fn func(ctx context.Context), logger log.Logger) *RecurringTask {
	if interval <= 0 {
		panic("service.recurring_task.go: interval must be positive")
	}
	return &RecurringTask{
		name:     helpers.StrPanic(name, "service.recurring_task.go: name is required"),
		interval: interval,
		fn:       helpers.NilPanic(fn, "service.recurring_task.go: fn is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.recurring_task.go: logger is required"), "component", "RecurringTask", "task", name),
	}
}

// Start launches the ticker loop. Returns ErrTaskAlreadyStarted if the task is already running.
func (t *RecurringTask) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return ErrTaskAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.loop(ctx, t.done)

	level.Debug(t.logger).Log("msg", "recurring task started", "interval", t.interval)
	return nil
}

func (t *RecurringTask) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		// select picks randomly when both channels are ready.
		if ctx.Err() != nil {
			return
		}
		t.fn(ctx)
	}
}

// Stop cancels the task and waits for the running fn (if any) to return. Idempotent.
func (t *RecurringTask) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	level.Debug(t.logger).Log("msg", "recurring task stopped")
}

// NewEvictionTask wraps registry.Evict into a RecurringTask that sweeps every interval.
func NewEvictionTask(registry interfaces.Registry, interval time.Duration, logger log.Logger) *RecurringTask {
	registry = helpers.NilPanic(registry, "service.recurring_task.go: registry is required")
	sweep := func(ctx context.Context) {
		evicted, err := registry.Evict(ctx)
		if err != nil {
			level.Error(logger).Log("msg", "eviction sweep failed", "err", err)
			return
		}
		if evicted > 0 {
			level.Info(logger).Log("msg", "evicted expired instances", "count", evicted)
		}
	}
	return NewRecurringTask("eviction", interval, sweep, logger)
}
