package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ajeebtech/playerlens/internal/cache"
	"github.com/ajeebtech/playerlens/pkg/models"
)

// searchQuery binds the search endpoint parameters
type searchQuery struct {
	Term string `validate:"required,max=100"`
}

// Search returns up to ten players whose name contains the term
// Query params: term (or q)
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	term := r.URL.Query().Get("term")
	if term == "" {
		term = r.URL.Query().Get("q")
	}
	params := searchQuery{Term: strings.TrimSpace(term)}

	if err := h.validate.Struct(params); err != nil {
		h.respondError(w, http.StatusBadRequest, "search term is required (term or q, at most 100 characters)", nil)
		return
	}

	if h.cacheable() {
		results, err := h.cache.ReadSearch(ctx, params.Term)
		if err == nil {
			respondJSON(w, http.StatusOK, models.SearchResponse{Results: results})
			return
		}
		if !cache.IsMiss(err) {
			h.logger.Warn("search cache read failed", slog.String("term", params.Term), slog.String("error", err.Error()))
		}
	}

	players, err := h.db.SearchPlayers(ctx, params.Term, searchLimit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to search players", err)
		return
	}
	if len(players) > searchLimit {
		players = players[:searchLimit]
	}

	results := make([]models.SearchResult, 0, len(players))
	for i := range players {
		results = append(results, players[i].ToSearchResult())
	}

	if h.cacheable() {
		if err := h.cache.WriteSearch(ctx, params.Term, results); err != nil {
			h.logger.Warn("search cache write failed", slog.String("term", params.Term), slog.String("error", err.Error()))
		}
	}

	respondJSON(w, http.StatusOK, models.SearchResponse{Results: results})
}
