// Package chi implements the HTTP API over the search engine.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/domain"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	logpkg "github.com/ishare-cloud/listmatch/internal/logger"
	"github.com/ishare-cloud/listmatch/internal/metrics"
	healthuc "github.com/ishare-cloud/listmatch/internal/usecase/health"
	searchuc "github.com/ishare-cloud/listmatch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search engine over HTTP.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidCriteria, http.StatusBadRequest, codeInvalidCriteria),
		sentinelHandler(domain.ErrUnknownDomain, http.StatusNotFound, codeUnknownDomain),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrDataIntegrity, http.StatusBadGateway, codeDataIntegrity),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, codeSourceUnavailable),
	}
	return s
}

// Routes registers the API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/search/{domain}", s.SearchListings)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchListings handles POST /api/v1/search/{domain}.
func (s *Server) SearchListings(w http.ResponseWriter, r *http.Request) {
	d, err := listing.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	set, err := criteriaFromRequest(d, r.Body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCriteria) {
			// Validation messages name only the offending field, safe to surface.
			writeError(w, http.StatusBadRequest, codeInvalidCriteria, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), set)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchesTotal.WithLabelValues(d.Word(), string(resp.Outcome)).Inc()
	for _, f := range resp.Relaxed {
		metrics.RelaxedCriteriaTotal.WithLabelValues(d.Word(), string(f)).Inc()
	}

	logpkg.FromContext(r.Context()).Debug("search completed",
		zap.String("domain", d.Word()),
		zap.String("outcome", string(resp.Outcome)),
		zap.Int("results", len(resp.Results)),
	)

	writeJSON(w, http.StatusOK, searchResponseFromEngine(resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// errorCode classifies API error responses.
type errorCode string

const (
	codeBadRequest        errorCode = "bad_request"
	codeInvalidCriteria   errorCode = "invalid_criteria"
	codeUnknownDomain     errorCode = "unknown_domain"
	codeNotFound          errorCode = "not_found"
	codeDataIntegrity     errorCode = "data_integrity_fault"
	codeSourceUnavailable errorCode = "source_unavailable"
	codeUnauthorized      errorCode = "unauthorized"
	codeInternal          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a client-facing message without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidCriteria,
		domain.ErrUnknownDomain,
		domain.ErrNotFound,
		domain.ErrSourceUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	// Integrity faults carry the listing identity, safe to surface.
	var ie *domain.IntegrityError
	if errors.As(err, &ie) {
		return ie.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
