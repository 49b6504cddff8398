package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ajeebtech/playerlens/internal/cache"
	"github.com/ajeebtech/playerlens/internal/db"
	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/go-playground/validator/v10"
)

const (
	serviceName  = "playerlens"
	searchLimit  = 10
	queryTimeout = 5 * time.Second
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db       db.PlayersDB
	cache    *cache.Cache
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler with dependencies. responseCache may be
// nil, in which case every request goes to the data source.
func NewHandler(database db.PlayersDB, responseCache *cache.Cache, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:       database,
		cache:    responseCache,
		logger:   logger,
		validate: validator.New(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	// Check data source connectivity
	if err := h.db.Ping(ctx); err != nil {
		h.respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Source:    h.db.Source(),
	})
}

// cacheable reports whether responses may be served from Redis. Synthetic
// lookups are cheap and depend on ids issued by earlier searches, so only
// database-backed responses are cached.
func (h *Handler) cacheable() bool {
	return h.cache != nil && h.db.Source() == models.SourcePostgres
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("error encoding response", slog.String("error", err.Error()))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.logger.Error(message, slog.Int("status", status), slog.String("error", err.Error()))
	}

	respondJSON(w, status, models.ErrorResponse{
		Error: message,
		Code:  status,
	})
}
