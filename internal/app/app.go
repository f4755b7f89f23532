package app

import (
	"fmt"
	"net/http"

	"github.com/jmcauliffe/gamepulse/external/oddsapi"
	"github.com/jmcauliffe/gamepulse/internal/config"
	"github.com/jmcauliffe/gamepulse/internal/infrastructure/repository/postgres"
	"github.com/jmcauliffe/gamepulse/internal/interfaces/httpapi"
	"github.com/jmcauliffe/gamepulse/internal/platform/cache"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
	"github.com/jmcauliffe/gamepulse/internal/platform/resilience"
	"github.com/jmcauliffe/gamepulse/internal/usecase"
)

// NewHTTPServer wires the full read+ingest stack. The returned cleanup
// closes the database pool and must run after the server shuts down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := connectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := db.Close

	teamRepo := postgres.NewTeamRepository(db)
	gameRepo := postgres.NewGameRepository(db)
	expectationRepo := postgres.NewExpectationRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)

	var listCache *cache.Store
	if cfg.CacheEnabled {
		listCache = cache.NewStore(cfg.CacheTTL)
	}

	discoverySvc := usecase.NewDiscoveryService(gameRepo, teamRepo, snapshotRepo, expectationRepo, listCache, logger)
	favoriteSvc := usecase.NewFavoriteService(favoriteRepo, teamRepo)

	var ingestionSvc *usecase.OddsIngestionService
	if cfg.OddsAPIEnabled {
		provider := oddsapi.NewClient(oddsapi.ClientConfig{
			BaseURL:             cfg.OddsAPIBaseURL,
			APIKey:              cfg.OddsAPIKey,
			Regions:             cfg.OddsAPIRegions,
			Markets:             cfg.OddsAPIMarkets,
			PreferredBookmakers: cfg.OddsAPIPreferredBookmakers,
			DaysFrom:            cfg.OddsAPIDaysFrom,
			Timeout:             cfg.OddsAPITimeout,
			MaxRetries:          cfg.OddsAPIMaxRetries,
			Logger:              logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.OddsAPICircuitEnabled,
				FailureThreshold: cfg.OddsAPICircuitFailureCount,
				OpenTimeout:      cfg.OddsAPICircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.OddsAPICircuitHalfOpenReq,
			},
		})

		planner := usecase.NewFetchPlanner(gameRepo, usecase.FetchPlannerConfig{
			InvocationInterval: cfg.InvocationInterval,
			RefreshWindow:      cfg.OddsRefreshWindow,
		}, logger)
		reconciler := usecase.NewReconciler(teamRepo, gameRepo, logger)

		ingestionSvc = usecase.NewOddsIngestionService(
			provider,
			planner,
			reconciler,
			gameRepo,
			expectationRepo,
			snapshotRepo,
			usecase.IngestionConfig{WorkerCount: cfg.IngestionWorkers},
			logger,
		)
	} else {
		logger.Info("odds ingestion disabled", "reason", "ODDS_API_ENABLED=false")
	}

	handler := httpapi.NewHandler(discoverySvc, favoriteSvc, ingestionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
