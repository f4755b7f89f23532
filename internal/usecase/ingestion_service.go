package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
	"github.com/jmcauliffe/gamepulse/internal/domain/game"
	"github.com/jmcauliffe/gamepulse/internal/domain/signal"
	"github.com/jmcauliffe/gamepulse/internal/domain/snapshot"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
)

const defaultIngestionWorkers = 2

type IngestionConfig struct {
	// WorkerCount bounds how many sport cycles run concurrently.
	WorkerCount int
}

// SportCycleResult reports one sport's cycle. Errors are per-event and
// per-fetch; a populated list alongside nonzero counters means partial
// success, not failure.
type SportCycleResult struct {
	SportKey            string   `json:"sport_key"`
	Skipped             bool     `json:"skipped"`
	FetchedScores       bool     `json:"fetched_scores"`
	EventsProcessed     int      `json:"events_processed"`
	ExpectationsWritten int      `json:"expectations_written"`
	TeamsCreated        int      `json:"teams_created"`
	GamesCreated        int      `json:"games_created"`
	ScoresUpdated       int      `json:"scores_updated"`
	SnapshotsWritten    int      `json:"snapshots_written"`
	DurationMs          int64    `json:"duration_ms"`
	Errors              []string `json:"errors,omitempty"`
}

type IngestionTotals struct {
	EventsProcessed     int `json:"events_processed"`
	ExpectationsWritten int `json:"expectations_written"`
	TeamsCreated        int `json:"teams_created"`
	GamesCreated        int `json:"games_created"`
	ScoresUpdated       int `json:"scores_updated"`
	SnapshotsWritten    int `json:"snapshots_written"`
	ErrorCount          int `json:"error_count"`
}

type IngestionRunResult struct {
	Skipped    bool               `json:"skipped"`
	PlanReason string             `json:"plan_reason"`
	SportCount int                `json:"sport_count"`
	Results    []SportCycleResult `json:"results"`
	Totals     IngestionTotals    `json:"totals"`
	DurationMs int64              `json:"duration_ms"`
}

/// OddsIngestionService runs the periodic ingestion batch: plan the fetch,
// pull odds (and scores when games are active), reconcile entities, append
// expectations, and derive state snapshots. Each sport cycle and each event
// inside it fails independently.
type OddsIngestionService struct {
	provider        OddsProvider
	planner         *FetchPlanner
	reconciler      *Reconciler
	gameRepo        game.Repository
	expectationRepo expectation.Repository
	snapshotRepo    snapshot.Repository
	workerCount     int
	logger          *logging.Logger
	now             func() time.Time
}

func NewOddsIngestionService(
	provider OddsProvider,
	planner *FetchPlanner,
	reconciler *Reconciler,
	gameRepo game.Repository,
	expectationRepo expectation.Repository,
	snapshotRepo snapshot.Repository,
	cfg IngestionConfig,
	logger *logging.Logger,
) *OddsIngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = defaultIngestionWorkers
	}
	return &OddsIngestionService{
		provider:        provider,
		planner:         planner,
		reconciler:      reconciler,
		gameRepo:        gameRepo,
		expectationRepo: expectationRepo,
		snapshotRepo:    snapshotRepo,
		workerCount:     workerCount,
		logger:          logger,
		now:             time.Now,
	}
}

// RunIngestion executes one scheduled invocation across the given sports
// (all supported sports when empty). Only a planning failure or a broken
// worker pool is a hard error; everything downstream degrades to per-sport
// and per-event error lists.
func (s *OddsIngestionService) RunIngestion(ctx context.Context, sports []string) (IngestionRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsIngestionService.RunIngestion")
	defer span.End()

	start := s.now()
	cleaned := make([]string, 0, len(sports))
	for _, sportKey := range sports {
		sportKey = strings.TrimSpace(sportKey)
		if sportKey != "" {
			cleaned = append(cleaned, sportKey)
		}
	}
	if len(cleaned) == 0 {
		cleaned = signal.SupportedSports()
	}

	plan, err := s.planner.Plan(ctx)
	if err != nil {
		return IngestionRunResult{}, fmt.Errorf("plan fetch: %w", err)
	}

	result := IngestionRunResult{PlanReason: plan.Reason, SportCount: len(cleaned)}
	if plan.Skip {
		result.Skipped = true
		for _, sportKey := range cleaned {
			result.Results = append(result.Results, SportCycleResult{SportKey: sportKey, Skipped: true})
		}
		result.DurationMs = s.now().Sub(start).Milliseconds()
		return result, nil
	}

	workerCount := s.workerCount
	if workerCount > len(cleaned) {
		workerCount = len(cleaned)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestionRunResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan SportCycleResult, len(cleaned))
	var workers sync.WaitGroup
	for _, sportKey := range cleaned {
		sportKey := sportKey
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rows <- s.runSportCycle(ctx, sportKey, plan)
		}); err != nil {
			workers.Done()
			return IngestionRunResult{}, fmt.Errorf("submit sport cycle to worker pool: %w", err)
		}
	}
	workers.Wait()
	close(rows)

	for row := range rows {
		result.Results = append(result.Results, row)
	}
	sort.SliceStable(result.Results, func(i, j int) bool {
		return result.Results[i].SportKey < result.Results[j].SportKey
	})
	for _, row := range result.Results {
		result.Totals.EventsProcessed += row.EventsProcessed
		result.Totals.ExpectationsWritten += row.ExpectationsWritten
		result.Totals.TeamsCreated += row.TeamsCreated
		result.Totals.GamesCreated += row.GamesCreated
		result.Totals.ScoresUpdated += row.ScoresUpdated
		result.Totals.SnapshotsWritten += row.SnapshotsWritten
		result.Totals.ErrorCount += len(row.Errors)
	}
	result.DurationMs = s.now().Sub(start).Milliseconds()

	s.logger.InfoContext(ctx, "ingestion run finished",
		"sports", len(cleaned),
		"events_processed", result.Totals.EventsProcessed,
		"expectations_written", result.Totals.ExpectationsWritten,
		"scores_updated", result.Totals.ScoresUpdated,
		"snapshots_written", result.Totals.SnapshotsWritten,
		"errors", result.Totals.ErrorCount,
		"duration_ms", result.DurationMs)
	return result, nil
}

func (s *OddsIngestionService) runSportCycle(ctx context.Context, sportKey string, plan FetchPlan) SportCycleResult {
	start := s.now()
	out := SportCycleResult{SportKey: sportKey}

	params, ok := signal.ParamsForSport(sportKey)
	if !ok {
		out.Errors = append(out.Errors, fmt.Sprintf("unsupported sport key %q", sportKey))
		out.DurationMs = s.now().Sub(start).Milliseconds()
		return out
	}

	var (
		quotes     []expectation.Expectation
		eventsSeen int
		oddsErr    error
		scores     []ExternalScore
		scoresErr  error
	)
	wg := conc.NewWaitGroup()
	wg.Go(func() {
		quotes, eventsSeen, oddsErr = s.provider.FetchQuotes(ctx, sportKey)
	})
	if plan.FetchScores {
		out.FetchedScores = true
		wg.Go(func() {
			scores, scoresErr = s.provider.FetchScores(ctx, sportKey)
		})
	}
	wg.Wait()

	if oddsErr != nil {
		out.Errors = append(out.Errors, fmt.Sprintf("fetch odds: %v", oddsErr))
	} else {
		out.EventsProcessed = eventsSeen
		for _, quote := range quotes {
			if err := s.persistQuote(ctx, params, quote, &out); err != nil {
				out.Errors = append(out.Errors, fmt.Sprintf("event %s: %v", quote.ExternalEventID, err))
			}
		}
	}

	if plan.FetchScores {
		if scoresErr != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("fetch scores: %v", scoresErr))
		} else {
			for _, ev := range scores {
				if err := s.applyScore(ctx, params, ev, &out); err != nil {
					out.Errors = append(out.Errors, fmt.Sprintf("score event %s: %v", ev.EventID, err))
				}
			}
		}
	}

	out.DurationMs = s.now().Sub(start).Milliseconds()
	return out
}

// persistQuote reconciles one normalized quote onto team/game rows and
// appends the expectation. Each write is its own atomic unit.
func (s *OddsIngestionService) persistQuote(ctx context.Context, params signal.Params, quote expectation.Expectation, out *SportCycleResult) error {
	home, created, err := s.reconciler.FindOrCreateTeam(ctx, quote.HomeTeam, params.League)
	if err != nil {
		return err
	}
	if created {
		out.TeamsCreated++
	}
	away, created, err := s.reconciler.FindOrCreateTeam(ctx, quote.AwayTeam, params.League)
	if err != nil {
		return err
	}
	if created {
		out.TeamsCreated++
	}

	matched, created, err := s.reconciler.FindOrCreateGame(ctx, params.SportKey, home.ID, away.ID, quote.CommenceTime)
	if err != nil {
		return err
	}
	if created {
		out.GamesCreated++
	}

	gameID := matched.ID
	quote.GameID = &gameID
	if _, err := s.expectationRepo.Insert(ctx, quote); err != nil {
		return fmt.Errorf("insert expectation: %w", err)
	}
	out.ExpectationsWritten++
	return nil
}

// applyScore matches one score event to a stored game, applies the status
// transition, and derives a snapshot when both scores parsed. An unmatched
// event is dropped, not an error.
func (s *OddsIngestionService) applyScore(ctx context.Context, params signal.Params, ev ExternalScore, out *SportCycleResult) error {
	now := s.now().UTC()

	matched, found, err := s.reconciler.MatchGame(ctx, ev.HomeTeam, ev.AwayTeam, ev.CommenceTime)
	if err != nil {
		return err
	}
	if !found {
		s.logger.DebugContext(ctx, "score event dropped, no matching game",
			"event_id", ev.EventID, "home", ev.HomeTeam, "away", ev.AwayTeam)
		return nil
	}

	updated := false
	computed := game.ComputeStatus(ev.Completed, ev.CommenceTime, now)
	if computed != matched.Status {
		var completedAt *time.Time
		if computed == game.StatusCompleted {
			stamp := now
			completedAt = &stamp
		}
		if err := s.gameRepo.UpdateStatus(ctx, matched.ID, computed, completedAt); err != nil {
			return fmt.Errorf("update game status: %w", err)
		}
		updated = true
	}

	if ev.HasScores() {
		wrote, err := s.writeSnapshot(ctx, params, matched, ev, now, out)
		if err != nil {
			return err
		}
		updated = updated || wrote
	}

	if updated {
		out.ScoresUpdated++
	}
	return nil
}

func (s *OddsIngestionService) writeSnapshot(ctx context.Context, params signal.Params, matched game.Game, ev ExternalScore, now time.Time, out *SportCycleResult) (bool, error) {
	if ev.Completed {
		hasFinal, err := s.snapshotRepo.HasFinal(ctx, matched.ID)
		if err != nil {
			return false, fmt.Errorf("check final snapshot: %w", err)
		}
		// First final sticks.
		if hasFinal {
			return false, nil
		}
	}

	var prev *snapshot.Snapshot
	latest, found, err := s.snapshotRepo.Latest(ctx, matched.ID)
	if err != nil {
		return false, fmt.Errorf("load latest snapshot: %w", err)
	}
	if found {
		prev = &latest
	}

	snap := deriveSnapshot(params, matched.ID, ev, prev, now)
	if _, err := s.snapshotRepo.Insert(ctx, snap); err != nil {
		return false, fmt.Errorf("insert snapshot: %w", err)
	}
	out.SnapshotsWritten++
	return true, nil
}

// deriveSnapshot converts one parsed score event into a state snapshot. The
// score feed carries no game clock, so period and clock are estimated from
// wall time; a completed event pins to end of regulation so the final
// snapshot always reads as late-stage.
func deriveSnapshot(params signal.Params, gameID int64, ev ExternalScore, prev *snapshot.Snapshot, now time.Time) snapshot.Snapshot {
	period, clock := signal.EstimateGameClock(params, ev.CommenceTime, now)
	if ev.Completed {
		if period < params.RegulationPeriods {
			period = params.RegulationPeriods
		}
		clock = 0
	}

	home := *ev.HomeScore
	away := *ev.AwayScore
	diff := home - away

	stage := signal.ClassifyStage(params, period, clock)
	competitive := signal.IsCompetitive(params, diff, stage)
	activity := signal.EstimateActivity(params, home, away, period, clock)
	tension := signal.TensionScore(params, diff, stage, competitive)

	momentum, leads := 0, 0
	if prev != nil {
		momentum = prev.MomentumShifts
		leads = prev.LeadChanges
		prevDiff := prev.ScoreDiff()
		if prevDiff != 0 && diff != 0 && (prevDiff > 0) != (diff > 0) {
			leads++
		}
		swing := prevDiff - diff
		if swing < 0 {
			swing = -swing
		}
		if swing >= params.MomentumSwing {
			momentum++
		}
	}

	margin := diff
	if margin < 0 {
		margin = -margin
	}
	closeFinish := ev.Completed && margin <= params.CompetitiveByStage[signal.StageLate]

	return snapshot.Snapshot{
		GameID:         gameID,
		CapturedAt:     now,
		TensionScore:   tension,
		MomentumShifts: momentum,
		LeadChanges:    leads,
		CloseFinish:    closeFinish,
		IsFinal:        ev.Completed,
		Stage:          stage,
		Competitive:    competitive,
		ActivityLevel:  activity,
		HomeScore:      ev.HomeScore,
		AwayScore:      ev.AwayScore,
	}
}
