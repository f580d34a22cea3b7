package controllers

import (
	"net/http"

	"github.com/expirytracker/expirytracker-backend/api/responses"
	"github.com/expirytracker/expirytracker-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ExpiryTracker-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// Ping answers the legacy liveness probe. The desktop client matches the
// body text, so it stays exactly as the original server wrote it.
func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("System is up!"))
	}
}
