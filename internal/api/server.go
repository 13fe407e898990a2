package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/model/dashboard"
	"github.com/luissevero/ignitegofinances/internal/model/register"
)

const shutdownTimeout = 10 * time.Second

type registrar interface {
	Register(ctx context.Context, u user.User, form register.Form) (transaction.Record, error)
	Clear(ctx context.Context, u user.User) error
}

type dashboardProvider interface {
	GetDashboard(ctx context.Context, u user.User, period string) (dashboard.Dashboard, error)
}

type transactionsReader interface {
	GetUserTransactions(ctx context.Context, userID string) ([]transaction.Record, error)
}

type Server struct {
	srv *http.Server
}

// NewRouter wires the JSON API. Users are identified by the path, the auth
// collaborator in front of this service is trusted.
func NewRouter(reg registrar, dashboards dashboardProvider, reader transactionsReader, origins []string) *gin.Engine {
	h := &handlers{registrar: reg, dashboards: dashboards, reader: reader}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/categories", h.listCategories)

	users := v1.Group("/users/:userID")
	users.GET("/dashboard", h.getDashboard)
	users.GET("/transactions", h.listTransactions)
	users.POST("/transactions", h.createTransaction)
	users.DELETE("/transactions", h.clearTransactions)

	return r
}

func NewServer(addr string, router http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", s.srv.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown")
	}
	logger.Info("http server stopped")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
