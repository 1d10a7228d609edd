// Package chi exposes the HTTP surface: pandit search, muhurat calendars
// and the privileged reindex triggers.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sevahub/panditseva/internal/domain"
	"github.com/sevahub/panditseva/internal/domain/search/request"
	healthuc "github.com/sevahub/panditseva/internal/usecase/health"
	indexeruc "github.com/sevahub/panditseva/internal/usecase/indexer"
	muhuratuc "github.com/sevahub/panditseva/internal/usecase/muhurat"
	searchuc "github.com/sevahub/panditseva/internal/usecase/search"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeUnauthorized     = "unauthorized"
	codeForbidden        = "forbidden"
	codeUpstream         = "upstream_unavailable"
	codeInternal         = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services onto chi routes.
type Server struct {
	search        *searchuc.Service
	muhurat       *muhuratuc.Service
	indexer       *indexeruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	muhurat *muhuratuc.Service,
	indexer *indexeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		muhurat: muhurat,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, codeForbidden),
		sentinelHandler(domain.ErrUpstream, http.StatusServiceUnavailable, codeUpstream),
	}
	return s
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/search", func(r chi.Router) {
		r.Post("/pandits", s.SearchPandits)
		r.Get("/pandits/autocomplete", s.Autocomplete)
		r.Get("/pandits/nearby", s.Nearby)
		r.With(RequireAdmin).Get("/pandits/{id}/sync", s.SyncPandit)
		r.With(RequireAdmin).Post("/reindex", s.Reindex)
	})
	r.Route("/muhurat", func(r chi.Router) {
		r.Get("/monthly", s.MuhuratMonthly)
		r.Get("/date/{date}", s.MuhuratDate)
		r.Post("/suggest-dates", s.MuhuratSuggest)
	})
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

// SearchPandits handles POST /search/pandits.
func (s *Server) SearchPandits(w http.ResponseWriter, r *http.Request) {
	var req request.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Autocomplete handles GET /search/pandits/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", searchuc.AutocompleteMaxResults)

	completions, err := s.search.Autocomplete(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": completions})
}

// Nearby handles GET /search/pandits/nearby.
func (s *Server) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "lat and lng must be valid numbers")
		return
	}

	pandits, err := s.search.Nearby(r.Context(), lat, lng,
		r.URL.Query().Get("pujaType"), queryInt(r, "limit", 0))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pandits": pandits})
}

// SyncPandit handles GET /search/pandits/{id}/sync (admin).
func (s *Server) SyncPandit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "pandit id is required")
		return
	}

	if err := s.indexer.IndexOne(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "synced", "id": id})
}

// Reindex handles POST /search/reindex (admin).
func (s *Server) Reindex(w http.ResponseWriter, r *http.Request) {
	report, err := s.indexer.ResyncAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// MuhuratMonthly handles GET /muhurat/monthly.
func (s *Server) MuhuratMonthly(w http.ResponseWriter, r *http.Request) {
	year, yearErr := strconv.Atoi(r.URL.Query().Get("year"))
	month, monthErr := strconv.Atoi(r.URL.Query().Get("month"))
	if yearErr != nil || monthErr != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "year and month must be valid integers")
		return
	}

	resp, err := s.muhurat.Monthly(r.Context(), year, month)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MuhuratDate handles GET /muhurat/date/{date}.
func (s *Server) MuhuratDate(w http.ResponseWriter, r *http.Request) {
	detail, err := s.muhurat.Date(r.Context(), chi.URLParam(r, "date"), r.URL.Query().Get("pujaType"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// MuhuratSuggest handles POST /muhurat/suggest-dates.
func (s *Server) MuhuratSuggest(w http.ResponseWriter, r *http.Request) {
	var req muhuratuc.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	suggestions, err := s.muhurat.Suggest(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrValidation,
		domain.ErrUnauthorized,
		domain.ErrForbidden,
		domain.ErrUpstream,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler handles ErrValidation with the per-field detail map.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeValidationFailed,
			Message: msg,
			Fields:  ve.Fields,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
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
