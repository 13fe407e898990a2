package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/api"
	"github.com/luissevero/ignitegofinances/internal/app"
	"github.com/luissevero/ignitegofinances/internal/config"
	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/tracing"
)

func main() {
	_ = godotenv.Load()
	defer logger.Sync()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}
	if os.Getenv("LOG_ENV") == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	closer, err := tracing.Init("gofinances-api")
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	a, err := app.New(conf, app.Options{Publish: true})
	if err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer a.Close()

	router := api.NewRouter(a.Registrar, a.Dashboards, a.Transactions, conf.HTTP().AllowOrigins())
	server := api.NewServer(conf.HTTP().Addr(), router)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = server.Run(ctx); err != nil {
		logger.Error("api stopped with error", zap.Error(err))
	}
}
