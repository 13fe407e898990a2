package storage

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/clients/cache"
	"github.com/luissevero/ignitegofinances/internal/config"
	"github.com/luissevero/ignitegofinances/internal/logger"
)

type backendConfig interface {
	App() *config.AppConfig
	Storage() *config.StorageConfig
	Memcached() *config.MemcachedConfig
	Postgres() *config.PostgresConfig
	SQLite() *config.SQLiteConfig
}

type Backend struct {
	KV    KVStore
	Close func() error
}

// NewBackend opens the key/value store selected by storage.backend.
func NewBackend(cfg backendConfig) (*Backend, error) {
	name := cfg.Storage().Backend()
	retries := cfg.Storage().UpdateRetries()
	logger.Info("init storage backend", zap.String("backend", name))

	noop := func() error { return nil }

	switch name {
	case config.MemoryBackend:
		return &Backend{KV: WithMetrics(name, NewInMemStorage()), Close: noop}, nil
	case config.MemcachedBackend:
		mc, err := cache.NewMemcache(cfg.Memcached(), cfg.App().CacheTTL(), retries)
		if err != nil {
			return nil, errors.Wrap(err, "init memcached storage")
		}
		return &Backend{KV: WithMetrics(name, mc), Close: noop}, nil
	case config.PostgresBackend:
		pg, err := NewPostgresStorage(cfg.Postgres(), retries)
		if err != nil {
			return nil, errors.Wrap(err, "init postgres storage")
		}
		return &Backend{KV: WithMetrics(name, pg), Close: pg.Close}, nil
	case config.SQLiteBackend:
		lite, err := NewSQLiteStorage(cfg.SQLite(), retries)
		if err != nil {
			return nil, errors.Wrap(err, "init sqlite storage")
		}
		return &Backend{KV: WithMetrics(name, lite), Close: lite.Close}, nil
	}
	return nil, errors.Errorf("unsupported storage backend %s", name)
}
