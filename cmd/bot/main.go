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
	"github.com/luissevero/ignitegofinances/internal/clients/tg"
	"github.com/luissevero/ignitegofinances/internal/config"
	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/model/messages"
	"github.com/luissevero/ignitegofinances/internal/tracing"
)

func main() {
	_ = godotenv.Load()
	defer logger.Sync()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init("gofinances-bot")
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	a, err := app.New(conf, app.Options{Publish: true})
	if err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer a.Close()

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}
	msgService := messages.NewService(client, a.Registrar, a.Dashboards)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metrics := api.NewServer(conf.HTTP().MetricsAddr(), mux)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		client.ListenUpdates(ctx, msgService)
		return nil
	})
	g.Go(func() error {
		return metrics.Run(ctx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("bot stopped with error", zap.Error(err))
	}
}
