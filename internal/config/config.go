package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/trainstatus/internal/sources/filesystem"
	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

const (
	SourceFilesystem = "filesystem"
	SourceRedis      = "redis"

	defaultPort = 8080
)

type Config struct {
	ListenAddr      string        // ex: "0.0.0.0:8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ServiceName   string        // reported by GET /
	Source        string        // "filesystem" | "redis"
	StatusFile    string        // JSON document written by the trainer
	ResultsDir    string        // directory where benchmark *.json results land
	WatchInterval time.Duration // 0 disables the progress watcher
	CORSOrigins   []string      // allowed Origin values, "*" for any

	// Redis (only when Source == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisKeyPrefix      string
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

// fileConfig is the optional YAML overlay. Environment variables win over it.
type fileConfig struct {
	Port            int      `yaml:"port"`
	ServiceName     string   `yaml:"service_name"`
	Source          string   `yaml:"source"`
	StatusFile      string   `yaml:"status_file"`
	ResultsDir      string   `yaml:"results_dir"`
	WatchInterval   string   `yaml:"watch_interval"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	LogLevel        string   `yaml:"log_level"`
	PrettyLog       *bool    `yaml:"pretty_log"`
	CORSOrigins     []string `yaml:"cors_origins"`
	Redis           struct {
		Addr      string `yaml:"addr"`
		Username  string `yaml:"username"`
		DB        int    `yaml:"db"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"redis"`
}

func Load() *Config {
	fc := mustLoadFile(getenv("TRAINSTATUS_CONFIG_FILE", ""))

	cfg := &Config{
		// Server settings
		ListenAddr:      net.JoinHostPort("0.0.0.0", strconv.Itoa(mustPort("PORT", orInt(fc.Port, defaultPort)))),
		ShutdownTimeout: mustDuration("TRAINSTATUS_SHUTDOWN_TIMEOUT", orDuration(fc.ShutdownTimeout, 5*time.Second)),

		// Logging
		LogLevel:  getenv("TRAINSTATUS_LOG_LEVEL", or(fc.LogLevel, "info")),
		PrettyLog: mustBool("TRAINSTATUS_PRETTY_LOG", fc.PrettyLog != nil && *fc.PrettyLog),

		// Training state
		ServiceName:   getenv("TRAINSTATUS_SERVICE_NAME", or(fc.ServiceName, training.DefaultServiceName)),
		Source:        strings.ToLower(getenv("TRAINSTATUS_SOURCE", or(fc.Source, SourceFilesystem))),
		StatusFile:    getenv("TRAINSTATUS_STATUS_FILE", or(fc.StatusFile, filesystem.DefaultStatusFile)),
		ResultsDir:    getenv("TRAINSTATUS_RESULTS_DIR", or(fc.ResultsDir, filesystem.DefaultResultsDir)),
		WatchInterval: mustDuration("TRAINSTATUS_WATCH_INTERVAL", orDuration(fc.WatchInterval, time.Minute)),
		CORSOrigins:   getenvSlice("TRAINSTATUS_CORS_ORIGINS", orSlice(fc.CORSOrigins, []string{"*"})),

		// Redis settings
		RedisAddr:           getenv("TRAINSTATUS_REDIS_ADDR", fc.Redis.Addr),
		RedisUser:           getenv("TRAINSTATUS_REDIS_USERNAME", or(fc.Redis.Username, "default")),
		RedisPassword:       getenv("TRAINSTATUS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("TRAINSTATUS_REDIS_DB", fc.Redis.DB),
		RedisKeyPrefix:      getenv("TRAINSTATUS_REDIS_KEY_PREFIX", or(fc.Redis.KeyPrefix, "trainstatus:")),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	switch cfg.Source {
	case SourceFilesystem:
	case SourceRedis:
		if cfg.RedisAddr == "" {
			panic("❌ FATAL: TRAINSTATUS_REDIS_ADDR is required when TRAINSTATUS_SOURCE=redis")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown TRAINSTATUS_SOURCE %q (want %q or %q)", cfg.Source, SourceFilesystem, SourceRedis))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// mustLoadFile reads the YAML overlay. An empty path means no overlay.
func mustLoadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Cannot read config file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid config file %s: %v", path, err))
	}
	return fc
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvSlice(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		if parts := splitAndTrim(v); len(parts) > 0 {
			return parts
		}
	}
	return def
}

// mustPort panics on anything that is not a valid TCP port. def comes from the
// config file or the built-in default and is checked the same way as the env value.
func mustPort(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		v = strconv.Itoa(def)
	}
	p, err := strconv.Atoi(v)
	if err != nil || p < 1 || p > 65535 {
		panic(fmt.Sprintf("❌ FATAL: Invalid port value for %s: %s", key, v))
	}
	return p
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func orSlice(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}

func orDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid duration in config file: %s", v))
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
