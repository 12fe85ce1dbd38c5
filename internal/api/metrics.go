package api

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/heysubinoy/remotekv/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type statsResponse struct {
	Operations map[string]uint64 `json:"operations"`
	AvgLatency map[string]string `json:"avg_latency"`
}

// StatsHandler returns current store metrics as JSON. A response that cannot
// be written is logged; the client has usually gone away.
func StatsHandler(instrumentedStore *store.InstrumentedStore, logger hclog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		metrics := instrumentedStore.GetMetrics()

		response := statsResponse{
			Operations: map[string]uint64{
				"get":    metrics.GetCount,
				"put":    metrics.PutCount,
				"delete": metrics.DeleteCount,
			},
			AvgLatency: map[string]string{
				"get":    metrics.GetAvgLatency.String(),
				"put":    metrics.PutAvgLatency.String(),
				"delete": metrics.DeleteAvgLatency.String(),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Warn("failed to write stats", "client", r.RemoteAddr, "error", err)
		}
	}
}

// MetricsHandler serves the Prometheus exposition format for gatherer.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
