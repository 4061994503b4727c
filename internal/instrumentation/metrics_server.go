package instrumentation

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is where the Prometheus handler is mounted.
const MetricsPath = "/metrics"

// ServeMetrics exposes the global Prometheus registry and a liveness endpoint
// on addr until ctx is done. It returns once the listener is bound, with the
// bound address.
func ServeMetrics(ctx context.Context, addr, version string, logger *slog.Logger) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.Handler())
	mux.Handle(HealthPath, LivenessHandler(version, time.Now()))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Debug("metrics server listening", slog.String("addr", listener.Addr().String()))
	return listener.Addr().String(), nil
}
