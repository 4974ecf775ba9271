package server

import (
	"net/http"

	"github.com/telhawk-systems/hivebridge/internal/handlers"
	"github.com/telhawk-systems/hivebridge/internal/middleware"
)

// NewRouter constructs a ServeMux with the notify API routes registered.
func NewRouter(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/healthz", h.HealthCheck)

	mux.HandleFunc("/api/v1/notify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.Notify(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/deliveries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.ListDeliveries(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/notifiers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.ListNotifiers(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	return middleware.RequestID(mux)
}
