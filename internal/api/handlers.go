// Package api exposes HTTP handlers for the recommendation service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"example.com/supplementstack/internal/auth"
	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/logging"
	"example.com/supplementstack/internal/normalize"
	"example.com/supplementstack/internal/resolver"
	"example.com/supplementstack/internal/validation"
)

const maxBodyBytes = 1 << 20

// Resolver produces a recommendation for a profile.
type Resolver interface {
	ResolveDetailed(ctx context.Context, profile domain.UserProfile) (resolver.Result, error)
}

// Catalog is the catalog view as seen by the HTTP surface.
type Catalog interface {
	ListItemsForGoal(ctx context.Context, goal domain.Goal) ([]domain.CatalogItem, error)
	Invalidate(ctx context.Context, key string) error
	Refresh(ctx context.Context) error
	LoadedAt() time.Time
}

// Handler coordinates HTTP requests with the resolver and catalog view.
type Handler struct {
	resolver Resolver
	catalog  Catalog
}

// NewHandler builds a Handler.
func NewHandler(resolver Resolver, catalog Catalog) *Handler {
	return &Handler{resolver: resolver, catalog: catalog}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/recommendations", h.recommendations)
	mux.HandleFunc("/v1/catalog", h.listCatalog)
	mux.HandleFunc("/v1/catalog/refresh", h.refreshCatalog)
	mux.HandleFunc("/healthz", healthz)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeRecommendationsWrite) {
		return
	}

	var req ResolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	result, err := h.resolver.ResolveDetailed(r.Context(), req.Profile())
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Type:   "validation_failed",
				Detail: verr.Error(),
				Fields: verr.Fields,
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_cancelled", err.Error())
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("resolve failed")
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		}
		return
	}

	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))
	if !explain {
		writeJSON(w, http.StatusOK, result.Stack)
		return
	}
	writeJSON(w, http.StatusOK, Explain(result))
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeCatalogRead, auth.ScopeCatalogAdmin) {
		return
	}

	raw := r.URL.Query().Get("goal")
	goal := normalize.Goals([]string{raw})[0]
	items, err := h.catalog.ListItemsForGoal(r.Context(), goal)
	switch {
	case errors.Is(err, domain.ErrNoCandidate):
		writeError(w, http.StatusNotFound, "not_found", "no catalog items for goal "+string(goal))
		return
	case errors.Is(err, domain.ErrCatalogUnavailable):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog unavailable")
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toCatalogView(goal, items, h.catalog.LoadedAt()))
}

func (h *Handler) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeCatalogAdmin) {
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		if err := h.catalog.Invalidate(r.Context(), "manual"); err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
			return
		}
		writeJSON(w, http.StatusAccepted, RefreshResponse{Status: "invalidated"})
		return
	}

	if err := h.catalog.Refresh(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog refresh failed")
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", err.Error())
		return
	}
	loadedAt := h.catalog.LoadedAt()
	writeJSON(w, http.StatusOK, RefreshResponse{Status: "refreshed", LoadedAt: &loadedAt})
}

// requireScope accepts the request when the caller holds any of scopes.
func requireScope(w http.ResponseWriter, r *http.Request, scopes ...string) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	for _, scope := range scopes {
		if claims.HasScope(scope) {
			return true
		}
	}
	writeError(w, http.StatusForbidden, "forbidden", "scope "+scopes[0]+" required")
	return false
}

// ValidationErrorResponse carries per-field failures.
type ValidationErrorResponse struct {
	Type   string                  `json:"type"`
	Detail string                  `json:"detail"`
	Fields []validation.FieldError `json:"fields"`
}

// RefreshResponse is returned by POST /v1/catalog/refresh.
type RefreshResponse struct {
	Status   string     `json:"status"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
