package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{in: "debug", want: zapcore.DebugLevel, wantOK: true},
		{in: "info", want: zapcore.InfoLevel, wantOK: true},
		{in: "warn", want: zapcore.WarnLevel, wantOK: true},
		{in: "error", want: zapcore.ErrorLevel, wantOK: true},
		{in: "verbose", want: zapcore.InfoLevel, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := wrap(zap.New(core)).With(String("component", "watcher"))

	log.Info("tick", Int("files", 2), Bool("changed", true), Error(errors.New("boom")))
	log.Debug("dropped")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["component"] != "watcher" {
		t.Errorf("component = %v", ctx["component"])
	}
	if ctx["files"] != int64(2) {
		t.Errorf("files = %v", ctx["files"])
	}
	if ctx["changed"] != true {
		t.Errorf("changed = %v", ctx["changed"])
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		l := New("error", pretty)
		l.Debug("hidden")
		_ = l.Sync()
	}
	Nop().Error("discarded")
}
