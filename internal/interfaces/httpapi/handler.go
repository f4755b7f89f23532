package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
	"github.com/jmcauliffe/gamepulse/internal/usecase"
)

type Handler struct {
	discoveryService *usecase.DiscoveryService
	favoriteService  *usecase.FavoriteService
	ingestionService *usecase.OddsIngestionService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	discoveryService *usecase.DiscoveryService,
	favoriteService *usecase.FavoriteService,
	ingestionService *usecase.OddsIngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		discoveryService: discoveryService,
		favoriteService:  favoriteService,
		ingestionService: ingestionService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseBoolQuery(r *http.Request, name string) bool {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

func parseIntQuery(r *http.Request, name string) int {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func parsePathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(r.PathValue(name)), 10, 64)
}
