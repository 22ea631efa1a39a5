package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/trainstatus/internal/logger"
	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

// observation is what the watcher remembers between two checks.
type observation struct {
	status      string // raw document, "" when absent
	state       string // top-level "status" field, if any
	resultsSeen bool
	results     int
}

// StatusWatcher polls a training source and logs progress transitions.
// It only reads; the served endpoints never depend on it.
type StatusWatcher struct {
	source   training.Source
	logger   logger.Logger
	interval time.Duration

	mu   sync.Mutex
	last observation

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewStatusWatcher creates a watcher. Start must be called to begin polling.
func NewStatusWatcher(src training.Source, log logger.Logger, interval time.Duration) *StatusWatcher {
	return &StatusWatcher{
		source:   src,
		logger:   log.With(logger.String("component", "status_watcher")),
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start checks once immediately, then on every tick until Stop or ctx is done.
func (sw *StatusWatcher) Start(ctx context.Context) {
	if !sw.started.CompareAndSwap(false, true) {
		return
	}
	sw.Check(ctx)

	ticker := time.NewTicker(sw.interval)
	go func() {
		defer close(sw.doneCh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sw.Check(ctx)
			case <-sw.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends polling and waits for the loop to exit. Safe to call more than once.
func (sw *StatusWatcher) Stop() {
	sw.stopOnce.Do(func() { close(sw.stopCh) })
	if sw.started.Load() {
		<-sw.doneCh
	}
}

// Check reads the source once and logs what changed since the previous check.
// It reports whether anything changed.
func (sw *StatusWatcher) Check(ctx context.Context) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	next := sw.last
	changed := false

	status, err := sw.source.TrainingStatus(ctx)
	switch {
	case errors.Is(err, training.ErrStatusNotFound):
		next.status, next.state = "", ""
	case err != nil:
		sw.logger.Warn("failed to read training status", logger.Error(err))
	default:
		next.status = string(status)
		next.state, _ = status.Field("status")
	}

	if next.status != sw.last.status {
		changed = true
		sw.logStatusChange(next)
	}

	files, err := sw.source.ListResultFiles(ctx)
	switch {
	case errors.Is(err, training.ErrResultsNotFound):
		next.resultsSeen, next.results = false, 0
	case err != nil:
		sw.logger.Warn("failed to list results", logger.Error(err))
	default:
		next.resultsSeen, next.results = true, len(files)
	}

	if next.resultsSeen != sw.last.resultsSeen || next.results != sw.last.results {
		changed = true
		sw.logger.Info("results changed",
			logger.Bool("available", next.resultsSeen),
			logger.Int("files", next.results),
			logger.Int("previous_files", sw.last.results),
			logger.String("path", sw.source.ResultsPath()))
	}

	sw.last = next
	return changed
}

func (sw *StatusWatcher) logStatusChange(next observation) {
	if next.status == "" {
		sw.logger.Info("training status document disappeared")
		return
	}
	if next.state != sw.last.state {
		sw.logger.Info("training state transition",
			logger.String("from", sw.last.state),
			logger.String("to", next.state))
		return
	}
	sw.logger.Debug("training status updated",
		logger.String("state", next.state))
}
