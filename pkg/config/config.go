// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, logging, cache, limits and formatter strategies

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Log contains logger configuration
	Log LogConfig

	// Cache contains result cache configuration
	Cache CacheConfig

	// Formatter selects the optional formatter strategies
	Formatter FormatterConfig

	// Limits bounds the work a single request may cause
	Limits LimitsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the sustained requests per second allowed per client
	RateLimit float64

	// RateBurst is the burst size allowed per client
	RateBurst int
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Backend is logrus or zap
	Backend string

	// Format is json or text
	Format string

	// File, when set, receives rotated log output instead of stdout
	File string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/none)
	Type string

	// TTL is how long memoized results live
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// FormatterConfig names the formatter strategies
type FormatterConfig struct {
	TOMLWriter      string
	SQLFormatter    string
	PythonFormatter string
	// PythonCommand is the external fixer, split on whitespace
	PythonCommand []string
	PythonTimeout time.Duration
}

// LimitsConfig holds per-request limits
type LimitsConfig struct {
	TreeMaxDepth    int
	MaxContentBytes int

	// BatchWorkers is the number of goroutines formatting batch items
	BatchWorkers int

	// MaxBatchItems bounds a single batch request
	MaxBatchItems int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cacheTTL, err := getEnvAsDurationOrDefault("CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	pythonTimeout, err := getEnvAsDurationOrDefault("PYTHON_FORMATTER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsFloatOrDefault("RATE_LIMIT", 10),
			RateBurst: getEnvAsIntOrDefault("RATE_BURST", 20),
		},
		Log: LogConfig{
			Level:   strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Backend: strings.ToLower(getEnvOrDefault("LOG_BACKEND", "logrus")),
			Format:  strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:    getEnvOrDefault("LOG_FILE", ""),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			TTL:  cacheTTL,
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "textforge:"),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "textforge-cache.db"),
		},
		Formatter: FormatterConfig{
			TOMLWriter:      getEnvOrDefault("TOML_WRITER", "toml"),
			SQLFormatter:    getEnvOrDefault("SQL_FORMATTER", "reindent"),
			PythonFormatter: getEnvOrDefault("PYTHON_FORMATTER", "dedent"),
			PythonCommand:   strings.Fields(getEnvOrDefault("PYTHON_FORMATTER_COMMAND", "autopep8 -")),
			PythonTimeout:   pythonTimeout,
		},
		Limits: LimitsConfig{
			TreeMaxDepth:    getEnvAsIntOrDefault("TREE_MAX_DEPTH", 512),
			MaxContentBytes: getEnvAsIntOrDefault("MAX_CONTENT_BYTES", 5<<20),
			BatchWorkers:    getEnvAsIntOrDefault("BATCH_WORKERS", 4),
			MaxBatchItems:   getEnvAsIntOrDefault("MAX_BATCH_ITEMS", 100),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or plain seconds ("90")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}

	if c.Server.RateBurst < 1 {
		return errors.New("rate burst must be at least 1")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", c.Log.Level)
	}

	if c.Log.Backend != "logrus" && c.Log.Backend != "zap" {
		return errors.New("log backend must be 'logrus' or 'zap'")
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return errors.New("log format must be 'json' or 'text'")
	}

	switch c.Cache.Type {
	case "memory", "none":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis', 'sqlite' or 'none'")
	}

	if c.Cache.TTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	if c.Formatter.PythonFormatter == "command" && len(c.Formatter.PythonCommand) == 0 {
		return errors.New("python formatter command cannot be empty")
	}

	if c.Limits.TreeMaxDepth < 1 {
		return errors.New("tree max depth must be at least 1")
	}

	if c.Limits.MaxContentBytes < 0 {
		return errors.New("max content bytes cannot be negative")
	}

	if c.Limits.BatchWorkers < 1 {
		return errors.New("batch workers must be at least 1")
	}

	if c.Limits.MaxBatchItems < 1 {
		return errors.New("max batch items must be at least 1")
	}

	return nil
}
