package store

import (
	"context"
	"fmt"

	"ac4y/cache"
	"ac4y/config"
	"ac4y/logging"
)

// Open 按配置创建存储后端
// cfg.Cache.MaxSize > 0 时外层包装 CachedBackend
func Open(ctx context.Context, cfg config.StoreConfig, logger logging.Logger) (IBackend, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var (
		backend IBackend
		err     error
	)
	switch cfg.Driver {
	case "", config.DriverMemory:
		backend = NewMemoryBackend()
	case config.DriverSQLite:
		backend, err = NewSQLiteBackend(ctx, cfg.DSN, cfg.Table)
	case config.DriverRedis:
		backend, err = NewRedisBackend(ctx, RedisConfig{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		logger.Error(ctx, "open document store failed",
			logging.String("driver", cfg.Driver),
			logging.Error(err),
		)
		return nil, err
	}

	if cfg.Cache.MaxSize > 0 {
		backend = NewCachedBackend(backend, cache.Config[string, *Record]{
			MaxSize: cfg.Cache.MaxSize,
			TTL:     cfg.Cache.TTL,
		})
	}

	logger.Info(ctx, "document store opened",
		logging.String("driver", cfg.Driver),
		logging.Int("cache_size", cfg.Cache.MaxSize),
	)
	return backend, nil
}
