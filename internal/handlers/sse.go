package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"order-insights/internal/errors"
	"order-insights/internal/observability"
	"order-insights/internal/services"
	"order-insights/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	currency  string
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger, currency string) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
		currency:  currency,
	}
}

// section renders the fragment for one dashboard panel, or a load failure
// notice in its place when no dataset is available.
func (h *SSEHandlers) section(id string) templ.Component {
	if !h.analytics.Ready() {
		err := h.analytics.LoadErr()
		msg := "The order data has not been loaded yet."
		if err != nil {
			msg = err.Error()
		}
		return templates.LoadError(id+"-content", msg, errors.LoadHint(err))
	}

	switch id {
	case "overview":
		return templates.Overview(h.analytics.Overall(), h.currency)
	case "concentration":
		return templates.Concentration(h.analytics.Concentration(), h.analytics.ConcentrationSummary(), h.currency)
	case "repeat-behavior":
		return templates.RepeatBehavior(h.analytics.RepeatBehavior(), h.currency)
	case "vendors":
		return templates.Vendors(h.analytics.Vendors(), h.currency)
	case "order-segments":
		return templates.OrderSegments(h.analytics.OrderSizes(), h.currency)
	case "logistics":
		return templates.Logistics(h.analytics.Logistics(), h.currency)
	case "operational-risk":
		return templates.OperationalRisk(h.analytics.OperationalRisk(), h.currency)
	}
	return nil
}

func (h *SSEHandlers) patchSection(ctx context.Context, sse *datastar.ServerSentEventGenerator, id string) error {
	c := h.section(id)
	if c == nil {
		return nil
	}
	html, err := templates.RenderString(ctx, c)
	if err != nil {
		return err
	}
	return sse.PatchElements(html)
}

// Section returns a handler that streams a single dashboard panel.
func (h *SSEHandlers) Section(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		sse := datastar.NewSSE(w, r)
		if err := h.patchSection(ctx, sse, id); err != nil {
			observability.RequestLogger(r.Context(), h.logger).Error("render section", "section", id, "error", err)
			return
		}

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	sse := datastar.NewSSE(w, r)
	logger := observability.RequestLogger(r.Context(), h.logger)

	for _, s := range templates.Sections {
		if err := h.patchSection(ctx, sse, s.ID); err != nil {
			logger.Error("render section", "section", s.ID, "error", err)
			return
		}
	}

	report := h.analytics.Report()
	signals, err := json.Marshal(map[string]any{
		"recordCount": report.RecordCount,
		"generatedAt": report.GeneratedAt.Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("marshal report signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
