package httpapi

import (
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/jmcauliffe/gamepulse/internal/usecase"
)

type runIngestionRequest struct {
	Sports []string `json:"sports"`
}

type runIngestionResponse struct {
	Success bool                       `json:"success"`
	Results []usecase.SportCycleResult `json:"results"`
	Summary runIngestionSummary        `json:"summary"`
}

type runIngestionSummary struct {
	usecase.IngestionTotals
	Skipped    bool   `json:"skipped"`
	PlanReason string `json:"plan_reason"`
	SportCount int    `json:"sport_count"`
	DurationMs int64  `json:"duration_ms"`
}

type runIngestionError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RunIngestionJob drives one ingestion batch. It keeps the plain job-runner
// response shape rather than the envelope the read endpoints use: schedulers
// only look at the summary, and a partial failure is still a 200 with the
// per-sport error lists populated.
func (h *Handler) RunIngestionJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestionJob")
	defer span.End()

	if h.ingestionService == nil {
		h.logger.ErrorContext(ctx, "ingestion job invoked without provider configuration")
		writeJSON(ctx, w, http.StatusInternalServerError, runIngestionError{
			Error:   "configuration",
			Message: "odds provider credentials are not configured",
		})
		return
	}

	// The body is optional; an empty or absent one runs every supported sport.
	var req runIngestionRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err == nil && len(body) > 0 {
		if err := sonic.Unmarshal(body, &req); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, runIngestionError{
				Error:   "bad_request",
				Message: "request body must be JSON",
			})
			return
		}
	}
	if sportKey := strings.TrimSpace(r.PathValue("sportKey")); sportKey != "" {
		req.Sports = []string{sportKey}
	}

	run, err := h.ingestionService.RunIngestion(ctx, req.Sports)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion run aborted", "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, runIngestionError{
			Error:   "ingestion",
			Message: err.Error(),
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, runIngestionResponse{
		Success: run.Totals.ErrorCount == 0,
		Results: run.Results,
		Summary: runIngestionSummary{
			IngestionTotals: run.Totals,
			Skipped:         run.Skipped,
			PlanReason:      run.PlanReason,
			SportCount:      run.SportCount,
			DurationMs:      run.DurationMs,
		},
	})
}
