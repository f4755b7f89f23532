package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmcauliffe/gamepulse/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	input := usecase.ListGamesInput{
		SportKey: strings.TrimSpace(r.URL.Query().Get("sport")),
		Status:   strings.TrimSpace(r.URL.Query().Get("status")),
		Reveal:   parseBoolQuery(r, "reveal"),
		Limit:    parseIntQuery(r, "limit"),
	}

	games, err := h.discoveryService.ListGames(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "sport", input.SportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"games": games,
		"count": len(games),
	})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID, err := parsePathID(r, "gameID")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: game id must be an integer", usecase.ErrInvalidInput))
		return
	}

	detail, err := h.discoveryService.GetGame(ctx, gameID, parseBoolQuery(r, "reveal"))
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}
