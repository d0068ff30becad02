package handlers

import (
	"net/http"
	"time"

	applog "kitchencost/internal/log"
)

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Health is a readiness handler suitable for infrastructure probes. It reports
// 503 while storage is missing or unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{Status: "ok", Time: time.Now().UTC()}

	status := http.StatusOK
	switch {
	case h.ping == nil:
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	default:
		if err := h.ping(r.Context()); err != nil {
			applog.Warn(r.Context(), "health check storage ping failed", "error", err)
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}
