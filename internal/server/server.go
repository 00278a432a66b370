package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"order-insights/internal/errors"
	"order-insights/internal/handlers"
	"order-insights/internal/observability"
	"order-insights/internal/services"
	"order-insights/internal/ui/templates"
)

type Server struct {
	analytics   *services.Analytics
	router      chi.Router
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

type Options struct {
	Currency string
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers, opts Options) *Server {
	s := &Server{
		analytics:   analytics,
		router:      chi.NewRouter(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger, opts.Currency),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	r := s.router

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Get("/", templateHandlers.Dashboard)
	r.Get("/health", s.apiHandlers.HandleHealth)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", s.apiHandlers.HandleStats)
		r.Post("/reload", s.apiHandlers.HandleReload)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", s.apiHandlers.HandleOverview)
		r.Get("/concentration", s.apiHandlers.HandleConcentration)
		r.Get("/repeat-behavior", s.apiHandlers.HandleRepeatBehavior)
		r.Get("/vendors", s.apiHandlers.HandleVendors)
		r.Get("/order-segments", s.apiHandlers.HandleOrderSegments)
		r.Get("/logistics", s.apiHandlers.HandleLogistics)
		r.Get("/operational-risk", s.apiHandlers.HandleOperationalRisk)
		r.Get("/report", s.apiHandlers.HandleReport)
	})

	// Datastar SSE endpoints, one per dashboard section
	for _, section := range templates.Sections {
		r.Get(section.Endpoint, s.sseHandlers.Section(section.ID))
	}
	r.Get("/sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	errors.WriteError(w, s.logger, errors.NotFound("No route for "+r.URL.Path), observability.GetRequestID(r.Context()))
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	errors.WriteError(w, s.logger, errors.MethodNotAllowed(r.Method+" is not allowed on "+r.URL.Path), observability.GetRequestID(r.Context()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
