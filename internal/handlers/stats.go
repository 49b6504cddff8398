package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ajeebtech/playerlens/internal/cache"
	"github.com/ajeebtech/playerlens/internal/db"
	"github.com/ajeebtech/playerlens/internal/stats"
	"github.com/ajeebtech/playerlens/pkg/models"
)

// statsQuery binds the stats endpoint parameters; one of the two is required
type statsQuery struct {
	ID   string `validate:"required_without=Name,max=32"`
	Name string `validate:"required_without=ID,max=100"`
}

// Stats returns the chart payload for one player
// Query params: id (list serial) or name
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	params := statsQuery{
		ID:   strings.TrimSpace(r.URL.Query().Get("id")),
		Name: strings.TrimSpace(r.URL.Query().Get("name")),
	}

	if err := h.validate.Struct(params); err != nil {
		h.respondError(w, http.StatusBadRequest, "id or name is required", nil)
		return
	}

	var (
		player   *models.Player
		cacheKey string
		err      error
	)

	if params.ID != "" {
		id, parseErr := strconv.ParseInt(params.ID, 10, 64)
		if parseErr != nil {
			if h.db.Source() != models.SourceSynthetic {
				h.respondError(w, http.StatusBadRequest, "id must be an integer", nil)
				return
			}
			// Synthetic data accepts any identifier
			id = db.SyntheticSerial(params.ID)
		}
		cacheKey = cache.StatsKeyByID(id)

		if cached := h.readStats(ctx, cacheKey); cached != nil {
			respondJSON(w, http.StatusOK, models.StatsResponse{Data: cached})
			return
		}
		player, err = h.db.GetPlayerBySerial(ctx, id)
	} else {
		cacheKey = cache.StatsKeyByName(params.Name)

		if cached := h.readStats(ctx, cacheKey); cached != nil {
			respondJSON(w, http.StatusOK, models.StatsResponse{Data: cached})
			return
		}
		player, err = h.db.GetPlayerByName(ctx, params.Name)
	}

	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve player", err)
		return
	}

	if player == nil {
		h.respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}

	payload := stats.Build(player, h.db.Source())

	if h.cacheable() {
		if err := h.cache.WriteStats(ctx, cacheKey, payload); err != nil {
			h.logger.Warn("stats cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		}
	}

	respondJSON(w, http.StatusOK, models.StatsResponse{Data: payload})
}

func (h *Handler) readStats(ctx context.Context, key string) *models.PlayerStats {
	if !h.cacheable() {
		return nil
	}

	cached, err := h.cache.ReadStats(ctx, key)
	if err != nil {
		if !cache.IsMiss(err) {
			h.logger.Warn("stats cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil
	}
	return cached
}
