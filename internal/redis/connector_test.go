package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/trainstatus/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		DialTimeout:    50 * time.Millisecond,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  50 * time.Millisecond,
		MaxWait:        100 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *ConnectOptions)
		wantErr bool
	}{
		{name: "valid", mutate: func(o *ConnectOptions) {}},
		{name: "missing addr", mutate: func(o *ConnectOptions) { o.Addr = "" }, wantErr: true},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }, wantErr: true},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }, wantErr: true},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }, wantErr: true},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }, wantErr: true},
		{name: "negative warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConnectGivesUpAfterTimeout(t *testing.T) {
	log := logger.New("error", false)

	start := time.Now()
	client, err := Connect(context.Background(), validOptions(), log)
	if err == nil {
		t.Fatal("Connect() to closed port should fail")
	}
	if client != nil {
		t.Error("Connect() should not return a client on failure")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Connect() took %v, should respect ConnectTimeout", elapsed)
	}
}

func TestConnectRejectsInvalidOptions(t *testing.T) {
	opts := validOptions()
	opts.PingTimeout = 0
	if _, err := Connect(context.Background(), opts, logger.New("error", false)); err == nil {
		t.Fatal("Connect() with invalid options should fail")
	}
}

func TestConnectSucceeds(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := validOptions()
	opts.Addr = mr.Addr()
	opts.DB = 3

	client, err := Connect(context.Background(), opts, logger.Nop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if got := client.Options().DB; got != 3 {
		t.Errorf("client DB = %d, want 3", got)
	}
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("Ping() after Connect = %v", err)
	}
}
