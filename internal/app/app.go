package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/trainstatus/internal/config"
	"github.com/MrSnakeDoc/trainstatus/internal/httpserver"
	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
	"github.com/MrSnakeDoc/trainstatus/internal/logger"
	"github.com/MrSnakeDoc/trainstatus/internal/redis"
	"github.com/MrSnakeDoc/trainstatus/internal/scheduler"
	"github.com/MrSnakeDoc/trainstatus/internal/sources/filesystem"
	redisstore "github.com/MrSnakeDoc/trainstatus/internal/store/redis"
	"github.com/MrSnakeDoc/trainstatus/internal/training"
	"github.com/MrSnakeDoc/trainstatus/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	watcher     *scheduler.StatusWatcher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	src, redisClient, err := newSource(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to initialize %s source: %v", cfg.Source, err)
		os.Exit(1)
	}

	reporter := training.NewReporter(src, cfg.ServiceName, time.Now)

	var watcher *scheduler.StatusWatcher
	if cfg.WatchInterval > 0 {
		watcher = scheduler.NewStatusWatcher(src, loggerClient, cfg.WatchInterval)
	} else {
		loggerClient.Info("status watcher disabled")
	}

	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		Reporter:    reporter,
		CORSOrigins: cfg.CORSOrigins,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		watcher:     watcher,
	}
}

// newSource builds the configured backend. The redis client is nil for the filesystem source.
func newSource(cfg *config.Config, log logger.Logger) (training.Source, *goredis.Client, error) {
	switch cfg.Source {
	case config.SourceRedis:
		// Fail fast if redis is unavailable.
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Redis initialized successfully",
			logger.String("key_prefix", cfg.RedisKeyPrefix))
		return redisstore.NewSource(client, cfg.RedisKeyPrefix), client, nil

	case config.SourceFilesystem:
		src := filesystem.New(cfg.StatusFile, cfg.ResultsDir)
		log.Info("reading training state from filesystem",
			logger.String("status_file", src.StatusFile()),
			logger.String("results_dir", src.ResultsPath()))
		return src, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s status service on %s", a.cfg.ServiceName, a.server.Addr())
	a.logger.Infof("trainstatus %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.watcher != nil {
		a.watcher.Start(ctx)
		a.logger.Info("status watcher started",
			logger.Duration("interval", a.cfg.WatchInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	if a.watcher != nil {
		a.watcher.Stop()
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			runErr = fmt.Errorf("failed to stop server: %w", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if runErr == nil {
		a.logger.Info("✅ trainstatus stopped cleanly")
	}
	_ = a.logger.Sync()
	return runErr
}
