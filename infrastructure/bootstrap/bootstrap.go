// ABOUTME: Bootstrap wires configuration into loggers, caches, runners and the workbench service
// ABOUTME: Shared by the HTTP server, the MCP server and the command-line tool

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"textforge-api/core/formatter"
	"textforge-api/core/interfaces"
	"textforge-api/core/workbench"
	"textforge-api/core/workers"
	"textforge-api/infrastructure/cache/memory"
	"textforge-api/infrastructure/cache/redis"
	"textforge-api/infrastructure/cache/sqlite"
	"textforge-api/infrastructure/command"
	logruslogger "textforge-api/infrastructure/logger/logrus"
	zaplogger "textforge-api/infrastructure/logger/zap"
	"textforge-api/pkg/config"
	"textforge-api/pkg/featureflags"
)

// App holds the wired components
type App struct {
	Config  *config.Config
	Flags   featureflags.Manager
	Deps    interfaces.Dependencies
	Service *workbench.Service

	closers []func() error
}

// Close stops the worker pool, releases the cache and flushes the logger
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds every component from cfg
func New(cfg *config.Config, flags featureflags.Manager) (*App, error) {
	if flags == nil {
		flags = featureflags.NewEnvManager("")
	}
	app := &App{Config: cfg, Flags: flags}

	logger, closeLogger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeLogger)

	cache, closeCache := NewCache(cfg.Cache, logger)
	if closeCache != nil {
		app.closers = append(app.closers, closeCache)
	}

	runner := command.NewRunner(logger)
	app.Deps = interfaces.Dependencies{Cache: cache, Logger: logger, Runner: runner}

	f, err := NewFormatter(cfg.Formatter, flags, runner, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	pool := workers.NewPool(workers.WorkerConfig{MaxWorkers: cfg.Limits.BatchWorkers})
	if err := pool.Start(); err != nil {
		_ = app.Close()
		return nil, err
	}
	app.closers = append(app.closers, pool.Stop)

	app.Service = workbench.NewService(app.Deps, f, flags, workbench.Config{
		CacheTTL:        cfg.Cache.TTL,
		TreeMaxDepth:    cfg.Limits.TreeMaxDepth,
		MaxContentBytes: cfg.Limits.MaxContentBytes,
		MaxBatchItems:   cfg.Limits.MaxBatchItems,
		Pool:            pool,
	})
	return app, nil
}

// NewLogger creates the configured logger backend and its flush function
func NewLogger(cfg config.LogConfig) (interfaces.Logger, func() error, error) {
	switch cfg.Backend {
	case "zap":
		l, err := zaplogger.New(cfg.Level, cfg.Format)
		if err != nil {
			return nil, nil, fmt.Errorf("creating zap logger: %w", err)
		}
		return l, func() error {
			// stdout cannot be synced on some platforms
			_ = l.Sync()
			return nil
		}, nil
	case "", "logrus":
		l := logruslogger.New(logruslogger.Options{Level: cfg.Level, Format: cfg.Format, File: cfg.File})
		return l, l.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}

// NewCache creates the configured cache. Backends that fail to start fall
// back to memory. A nil cache means caching is off.
func NewCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, func() error) {
	switch cfg.Type {
	case "none":
		logger.Info("Result cache disabled", nil)
		return nil, nil
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, redisCache.Close
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
				"path":  cfg.SQLitePath,
			})
			break
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLitePath,
		})
		return sqliteCache, sqliteCache.Close
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(0), nil
}

// NewFormatter resolves the formatter strategies. Command-based formatters
// stay off unless the external formatters flag is on.
func NewFormatter(cfg config.FormatterConfig, flags featureflags.Manager, runner interfaces.CommandRunner, logger interfaces.Logger) (*formatter.Formatter, error) {
	python := cfg.PythonFormatter
	if python == "command" && !flags.IsEnabled(context.Background(), featureflags.ExternalFormatters) {
		logger.Warn("External formatters are disabled, using dedent for Python", map[string]interface{}{
			"flag": string(featureflags.ExternalFormatters),
		})
		python = "dedent"
	}

	strategies, err := formatter.NewStrategies(formatter.StrategyConfig{
		TOMLWriter:      cfg.TOMLWriter,
		SQLFormatter:    cfg.SQLFormatter,
		PythonFormatter: python,
		PythonCommand:   cfg.PythonCommand,
		PythonTimeout:   cfg.PythonTimeout,
	}, runner, logger)
	if err != nil {
		return nil, fmt.Errorf("configuring formatters: %w", err)
	}
	return formatter.New(strategies), nil
}
