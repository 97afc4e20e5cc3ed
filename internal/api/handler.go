package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"royaltydesk/m/internal/dashboard"
	"royaltydesk/m/internal/metrics"
)

// Wire messages for dashboard failures. Existing callers match on them.
const (
	msgInvalidAuthorID = "author_id must be a number"
	msgAuthorNotFound  = "Author not found"
	msgDashboardFailed = "unable to load dashboard"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	dashboards   *dashboard.Service
	logger       *zap.Logger
	legacyErrors bool
}

// Option customizes a Handler.
type Option func(*Handler)

// WithLegacyErrorStatus answers dashboard errors with 200 and an error
// body instead of 4xx.
func WithLegacyErrorStatus(enabled bool) Option {
	return func(h *Handler) { h.legacyErrors = enabled }
}

// New constructs a Handler.
func New(dashboards *dashboard.Service, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{dashboards: dashboards, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	// Any origin is accepted and echoed back; browsers refuse a literal
	// "*" on credentialed requests.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(*http.Request, string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/dashboard", h.getDashboard)
	r.Get("/dashboard/{author_id}", h.getDashboardByPath)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard handlers

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	h.serveDashboard(w, r, r.URL.Query().Get("author_id"))
}

// getDashboardByPath serves the older path-parameter form of the endpoint.
func (h *Handler) getDashboardByPath(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "author_id")
	w.Header().Set("Deprecation", "true")
	w.Header().Set("Link", fmt.Sprintf(`</dashboard?author_id=%s>; rel="successor-version"`, url.QueryEscape(raw)))
	h.serveDashboard(w, r, raw)
}

func (h *Handler) serveDashboard(w http.ResponseWriter, r *http.Request, raw string) {
	authorID, err := dashboard.ParseAuthorID(raw)
	if err != nil {
		metrics.ObserveDashboard(metrics.OutcomeInvalid)
		h.respondDashboardError(w, r, err)
		return
	}

	view, err := h.dashboards.GetDashboard(r.Context(), authorID)
	if err != nil {
		h.respondDashboardError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) respondDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, msgDashboardFailed
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		status, message = http.StatusBadRequest, msgInvalidAuthorID
	case errors.Is(err, dashboard.ErrAuthorNotFound):
		status, message = http.StatusNotFound, msgAuthorNotFound
	default:
		h.logger.Error("dashboard request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	if h.legacyErrors && status < http.StatusInternalServerError {
		status = http.StatusOK
	}
	respondError(w, status, message)
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
