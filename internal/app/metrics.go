package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// NewMetricsRouter exposes /metrics for reg and a /healthz liveness probe.
func NewMetricsRouter(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return r
}

// StartMetricsServer listens on addr and serves NewMetricsRouter in the
// background. Listen errors are returned synchronously.
func StartMetricsServer(ctx context.Context, addr string, reg *prometheus.Registry) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}
	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           NewMetricsRouter(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger := logging.FromContext(ctx)
	go func() {
		logger.Info("metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()
	return srv, nil
}

// StopMetricsServer shuts srv down gracefully.
func StopMetricsServer(ctx context.Context, srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.FromContext(ctx).Error("metrics server shutdown", zap.Error(err))
	}
}
