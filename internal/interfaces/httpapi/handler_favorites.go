package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/jmcauliffe/gamepulse/internal/usecase"
)

type saveFavoritesRequest struct {
	// An empty list clears the user's favorites.
	TeamIDs []int64 `json:"team_ids" validate:"omitempty,dive,gt=0"`
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	userID, err := parsePathID(r, "userID")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: user id must be an integer", usecase.ErrInvalidInput))
		return
	}

	teams, err := h.favoriteService.ListFavorites(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list favorites failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"teams": teams,
		"count": len(teams),
	})
}

func (h *Handler) SaveFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveFavorites")
	defer span.End()

	userID, err := parsePathID(r, "userID")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: user id must be an integer", usecase.ErrInvalidInput))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput))
		return
	}

	var req saveFavoritesRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: request body must be JSON", usecase.ErrInvalidInput))
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.favoriteService.SaveFavorites(ctx, userID, req.TeamIDs); err != nil {
		h.logger.WarnContext(ctx, "save favorites failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"saved": len(req.TeamIDs),
	})
}
