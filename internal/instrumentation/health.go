package instrumentation

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthPath is where the liveness handler is mounted next to the metrics.
const HealthPath = "/healthz"

// HealthResponse represents the JSON response of the liveness endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
}

// LivenessHandler reports that the console process is running.
func LivenessHandler(version string, startTime time.Time) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(startTime).Truncate(time.Second).String(),
		})
	})
}
