package app

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/clients/cache"
	"github.com/luissevero/ignitegofinances/internal/clients/kafka"
	"github.com/luissevero/ignitegofinances/internal/config"
	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/model/dashboard"
	"github.com/luissevero/ignitegofinances/internal/model/register"
	"github.com/luissevero/ignitegofinances/internal/model/storage"
)

// App holds the services shared by every binary.
type App struct {
	Transactions *storage.TransactionStorage
	Dashboards   *dashboard.Service
	Registrar    *register.Service

	closers []func() error
}

type Options struct {
	// Publish enables the kafka producer when brokers are configured.
	Publish bool
}

func New(cfg *config.Service, opts Options) (*App, error) {
	a := &App{}

	backend, err := storage.NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, backend.Close)
	a.Transactions = storage.NewTransactionStorage(backend.KV, cfg.App().Namespace())

	var dashOpts []dashboard.Option
	if cfg.Memcached().Enabled() {
		mc, err := cache.NewMemcache(cfg.Memcached(), cfg.App().CacheTTL(), cfg.Storage().UpdateRetries())
		if err != nil {
			a.Close()
			return nil, errors.Wrap(err, "init dashboard cache")
		}
		dashOpts = append(dashOpts, dashboard.WithCache(mc))
	}
	a.Dashboards = dashboard.NewService(a.Transactions, dashboard.NewFormatter(cfg.App().Location()), dashOpts...)

	regOpts := []register.Option{register.WithCacheInvalidator(a.Dashboards)}
	if opts.Publish && cfg.Kafka().Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka())
		if err != nil {
			a.Close()
			return nil, errors.Wrap(err, "init kafka producer")
		}
		a.closers = append(a.closers, func() error { producer.Close(); return nil })
		regOpts = append(regOpts, register.WithPublisher(producer))
	}
	a.Registrar = register.NewService(a.Transactions, regOpts...)

	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error("failed to close resource", zap.Error(err))
		}
	}
}
