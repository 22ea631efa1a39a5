package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/trainstatus/internal/logger"
	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

type stubSource struct {
	mu        sync.Mutex
	status    training.TrainingStatus
	statusErr error
	files     []string
	filesErr  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) TrainingStatus(context.Context) (training.TrainingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusErr
}

func (s *stubSource) ListResultFiles(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files, s.filesErr
}

func (s *stubSource) ResultsPath() string        { return "/results" }
func (s *stubSource) Ping(context.Context) error { return nil }

func (s *stubSource) set(status string, files []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == "" {
		s.status, s.statusErr = nil, training.ErrStatusNotFound
	} else {
		s.status, s.statusErr = training.TrainingStatus(status), nil
	}
	if files == nil {
		s.files, s.filesErr = nil, training.ErrResultsNotFound
	} else {
		s.files, s.filesErr = files, nil
	}
}

// observedLogger records entries in memory.
func observedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestStatusWatcherCheck(t *testing.T) {
	log, logs := observedLogger()
	src := &stubSource{}
	src.set("", nil)
	sw := NewStatusWatcher(src, log, time.Hour)
	ctx := context.Background()

	if sw.Check(ctx) {
		t.Error("first check with nothing present should report no change")
	}

	src.set(`{"status":"training","epoch":1}`, nil)
	if !sw.Check(ctx) {
		t.Error("status appearing should report a change")
	}
	if n := logs.FilterMessage("training state transition").Len(); n != 1 {
		t.Errorf("got %d transition logs, want 1", n)
	}

	src.set(`{"status":"training","epoch":2}`, nil)
	if !sw.Check(ctx) {
		t.Error("epoch change should report a change")
	}
	if n := logs.FilterMessage("training state transition").Len(); n != 1 {
		t.Errorf("same state should not log a transition, got %d", n)
	}

	if sw.Check(ctx) {
		t.Error("identical state should report no change")
	}

	src.set(`{"status":"completed","epoch":3}`, []string{"a.json"})
	if !sw.Check(ctx) {
		t.Error("completion with results should report a change")
	}
	transitions := logs.FilterMessage("training state transition").All()
	last := transitions[len(transitions)-1].ContextMap()
	if last["from"] != "training" || last["to"] != "completed" {
		t.Errorf("transition = %v -> %v", last["from"], last["to"])
	}
	if n := logs.FilterMessage("results changed").Len(); n != 1 {
		t.Errorf("got %d results logs, want 1", n)
	}
	if last["component"] != "status_watcher" {
		t.Errorf("component field = %v", last["component"])
	}
}

func TestStatusWatcherKeepsStateOnReadError(t *testing.T) {
	log, logs := observedLogger()
	src := &stubSource{}
	src.set(`{"status":"training"}`, []string{"a.json"})
	sw := NewStatusWatcher(src, log, time.Hour)
	ctx := context.Background()
	sw.Check(ctx)

	src.mu.Lock()
	src.statusErr = errors.New("disk on fire")
	src.filesErr = errors.New("disk on fire")
	src.mu.Unlock()

	if sw.Check(ctx) {
		t.Error("read errors should not be reported as changes")
	}
	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 2 {
		t.Errorf("got %d warnings, want 2", n)
	}
}

func TestStatusWatcherStartStop(t *testing.T) {
	log, _ := observedLogger()
	src := &stubSource{}
	src.set(`{"status":"training"}`, nil)
	sw := NewStatusWatcher(src, log, 10*time.Millisecond)

	sw.Start(context.Background())
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		sw.Stop()
		sw.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return")
	}
}

func TestStatusWatcherStopWithoutStart(t *testing.T) {
	log, _ := observedLogger()
	sw := NewStatusWatcher(&stubSource{}, log, time.Second)
	sw.Stop()
}
