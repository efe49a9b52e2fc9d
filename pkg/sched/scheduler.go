// Package sched implements the persistence scheduler: the bridge between
// in-memory mutations and the durable-store adapter.
//
// Three triggers invoke the same idempotent flush operation:
//   - a cancellable debounce timer, rearmed on every board/style mutation, so
//     rapid typing coalesces into one write
//   - an immediate, synchronous flush on active-pointer mutations
//   - a non-cancellable periodic timer guarding against missed debounces on
//     abrupt termination
//
// Suspend (visibility-loss analog) and Close (teardown analog) are additional
// synchronous callers of that flush. The scheduler is the sole writer to the
// store adapter; overlapping triggers are serialized by a mutex.
package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"

	"github.com/pinstack/pinstack/pkg/core"
)

const (
	// DefaultDebounce is the quiet period after a mutation before a flush.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultInterval is the cadence of the unconditional safety-net flush.
	DefaultInterval = 30 * time.Second
	// flushTimeout bounds a single flush against a stuck store.
	flushTimeout = 10 * time.Second
)

// Config holds the scheduler wiring.
type Config struct {
	// Flush writes the full state to the store adapter. Required, must be
	// idempotent. The scheduler guarantees it never runs concurrently with
	// itself.
	Flush func(ctx context.Context)
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Interval defaults to DefaultInterval. Zero or negative disables the
	// periodic flush (tests use this).
	Interval time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Scheduler decides when in-memory state reaches the durable stores. It
// implements core.FlushPolicy and runs its periodic timer as a lifecycle
// worker.
type Scheduler struct {
	*worker.BaseWorker

	flush    func(ctx context.Context)
	debounce *debouncer
	interval time.Duration
	logger   *slog.Logger

	flushMu sync.Mutex
	cancel  context.CancelFunc
	once    sync.Once
}

// New creates a Scheduler. Call Start to arm the periodic timer.
func New(cfg Config) *Scheduler {
	s := &Scheduler{
		BaseWorker: worker.NewBaseWorker("flush-scheduler"),
		flush:      cfg.Flush,
		interval:   cfg.Interval,
		logger:     cfg.Logger,
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if s.interval == 0 {
		s.interval = DefaultInterval
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.debounce = newDebouncer(cfg.Debounce)
	return s
}

// Start launches the periodic flush worker. With a non-positive interval the
// scheduler still serves debounced and immediate flushes.
func (s *Scheduler) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	status := s.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("scheduler already started (status: %s)", status)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.SetStatus(worker.StatusRunning)
	return s.StartFunc(runCtx, s.run)
}

// run is the periodic safety-net loop.
func (s *Scheduler) run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.doFlush()
		}
	}
}

// State implements worker.Worker.
func (s *Scheduler) State() worker.State {
	return s.ExportState(func(st *worker.State) {
		st.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// Mutated implements core.FlushPolicy. Board and style changes rearm the
// debounce timer; active-pointer changes flush immediately so they survive
// abrupt navigation.
func (s *Scheduler) Mutated(kind core.ChangeKind) {
	if kind == core.ChangeActive {
		s.doFlush()
		return
	}
	s.debounce.trigger(s.doFlush)
}

// Suspend implements core.FlushPolicy: an unconditional synchronous flush.
// The pending debounce stays armed; flushing twice is harmless.
func (s *Scheduler) Suspend() {
	s.doFlush()
}

// Close implements core.FlushPolicy: stop both timers, then perform the final
// teardown flush. Subsequent calls only repeat the flush.
func (s *Scheduler) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.debounce.stop()
		if s.cancel != nil {
			s.StopRequested = true
			s.cancel()
			_ = s.BaseWorker.Stop(ctx)
		}
	})
	s.doFlush()
	return nil
}

// doFlush serializes and bounds the flush operation.
func (s *Scheduler) doFlush() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	s.flush(ctx)
}

var _ core.FlushPolicy = (*Scheduler)(nil)
