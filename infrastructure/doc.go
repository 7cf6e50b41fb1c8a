// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as result caching, logging and running external formatters.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache on patrickmn/go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: File-backed cache on SQLite
// - command: os/exec CommandRunner for external style fixers
// - logger/logrus: Logrus logger with optional lumberjack rotation
// - logger/zap: Zap logger
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	err := cache.Set(ctx, "format:9f86d0", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "format:9f86d0")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "textforge:",
//	})
//
// A miss is reported as interfaces.ErrCacheMiss by every implementation.
//
// # Logger
//
// The loggers support structured logging with fields:
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Formatted content", map[string]interface{}{
//	    "format": "json",
//	    "bytes":  42,
//	})
package infrastructure
