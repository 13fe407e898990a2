package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luissevero/ignitegofinances/internal/api"
	"github.com/luissevero/ignitegofinances/internal/app"
	"github.com/luissevero/ignitegofinances/internal/clients/kafka"
	"github.com/luissevero/ignitegofinances/internal/config"
	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/tracing"
)

func main() {
	_ = godotenv.Load()
	defer logger.Sync()

	logger.Info("Dashboarder init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}
	if !conf.Kafka().Enabled() || !conf.Memcached().Enabled() {
		logger.Fatal("dashboarder needs kafka brokers and memcached hosts")
	}

	closer, err := tracing.Init("gofinances-dashboarder")
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	a, err := app.New(conf, app.Options{})
	if err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer a.Close()

	consumer, err := kafka.NewConsumer(conf.Kafka(), a.Dashboards)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	logger.Info("Dashboarder init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metrics := api.NewServer(conf.HTTP().MetricsAddr(), mux)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.StartConsuming(ctx)
	})
	g.Go(func() error {
		return metrics.Run(ctx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("dashboarder stopped with error", zap.Error(err))
	}
}
