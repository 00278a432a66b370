package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"order-insights/internal/errors"
	"order-insights/internal/observability"
	"order-insights/internal/services"
)

const (
	cacheControl  = "public, max-age=300"
	reloadTimeout = 30 * time.Second
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// ready writes a 503 and returns false when no dataset is loaded.
func (h *APIHandlers) ready(w http.ResponseWriter, r *http.Request) bool {
	if h.analytics.Ready() {
		return true
	}
	requestID := observability.GetRequestID(r.Context())
	errors.WriteError(w, h.logger, errors.DataUnavailable(h.analytics.LoadErr()), requestID)
	return false
}

func (h *APIHandlers) writeCached(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheControl,
	})
}

// limitParam reads the optional ?limit= query parameter. Zero means no limit.
func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.Validation("limit must be a non-negative integer")
	}
	return n, nil
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func (h *APIHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, h.analytics.Overall())
}

func (h *APIHandlers) HandleConcentration(w http.ResponseWriter, r *http.Request) {
	n, err := limitParam(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}
	if !h.ready(w, r) {
		return
	}

	h.writeCached(w, map[string]any{
		"customers": limit(h.analytics.Concentration(), n),
		"summary":   h.analytics.ConcentrationSummary(),
	})
}

func (h *APIHandlers) HandleRepeatBehavior(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, h.analytics.RepeatBehavior())
}

func (h *APIHandlers) HandleVendors(w http.ResponseWriter, r *http.Request) {
	n, err := limitParam(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, limit(h.analytics.Vendors(), n))
}

func (h *APIHandlers) HandleOrderSegments(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, h.analytics.OrderSizes())
}

func (h *APIHandlers) HandleLogistics(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, h.analytics.Logistics())
}

func (h *APIHandlers) HandleOperationalRisk(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, h.analytics.OperationalRisk())
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeCached(w, h.analytics.Report())
}

// HandleHealth reports "degraded" when no dataset was ever loaded and "stale"
// when the last reload failed and the previous report is still being served.
func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ready := h.analytics.Ready()
	loadErr := h.analytics.LoadErr()

	status := "healthy"
	switch {
	case !ready:
		status = "degraded"
	case loadErr != nil:
		status = "stale"
	}

	healthData := map[string]any{
		"status":      status,
		"data_loaded": ready,
		"stale":       ready && loadErr != nil,
		"timestamp":   time.Now().Format(time.RFC3339),
		"version":     "1.0.0",
	}
	if loadErr != nil {
		healthData["load_error"] = loadErr.Error()
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}

// HandleReload re-reads the data source, bypassing the cache.
func (h *APIHandlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), reloadTimeout)
	defer cancel()

	requestID := observability.GetRequestID(r.Context())
	if err := h.analytics.Reload(ctx); err != nil {
		errors.WriteError(w, h.logger, errors.DataUnavailable(err), requestID)
		return
	}

	observability.RequestLogger(r.Context(), h.logger).Info("order data reloaded", "records", h.analytics.Report().RecordCount)
	errors.WriteSuccess(w, h.analytics.Stats())
}
