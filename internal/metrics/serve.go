package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Serve exposes the metrics endpoint on addr in the background. Errors
// from the listener are logged, not returned: metrics are best-effort
// and never block a sweep.
func Serve(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("serving metrics", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics listener stopped", zap.Error(err))
		}
	}()
}
