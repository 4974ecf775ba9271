package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/telhawk-systems/hivebridge/internal/hive"
	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/service"
)

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func NewHandler(service *service.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Notify handles POST /api/v1/notify
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Rule == "" {
		http.Error(w, "Rule name required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Notify(r.Context(), req.Rule, req.Matches)
	if err != nil {
		var deliveryErr *hive.DeliveryError
		switch {
		case errors.Is(err, service.ErrRuleNotFound):
			http.Error(w, "Rule not found", http.StatusNotFound)
		case errors.Is(err, service.ErrSuppressed):
			http.Error(w, "Alert suppressed by realert window", http.StatusConflict)
		case errors.As(err, &deliveryErr):
			h.logger.ErrorContext(r.Context(), "delivery failed", "rule", req.Rule, "error", err)
			http.Error(w, "Alert delivery failed", http.StatusBadGateway)
		default:
			h.logger.ErrorContext(r.Context(), "notify failed", "rule", req.Rule, "error", err)
			http.Error(w, "Failed to process notification", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListDeliveries handles GET /api/v1/deliveries
func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	req := &models.ListDeliveriesRequest{
		Page:     parseInt(r.URL.Query().Get("page"), 1),
		Limit:    parseInt(r.URL.Query().Get("limit"), 50),
		RuleName: r.URL.Query().Get("rule"),
		Status:   r.URL.Query().Get("status"),
	}

	resp, err := h.service.ListDeliveries(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list deliveries", "error", err)
		http.Error(w, "Failed to list deliveries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListNotifiers handles GET /api/v1/notifiers
func (h *Handler) ListNotifiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.DescribeNotifiers())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
