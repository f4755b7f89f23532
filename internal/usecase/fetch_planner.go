package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/game"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
)

const (
	defaultInvocationInterval = 5 * time.Minute
	defaultRefreshWindow      = 15 * time.Minute
)

// FetchPlan tells one ingestion run how much provider quota to spend.
type FetchPlan struct {
	Skip        bool                `json:"skip"`
	FetchOdds   bool                `json:"fetch_odds"`
	FetchScores bool                `json:"fetch_scores"`
	Reason      string              `json:"reason"`
	Counts      game.ActivityCounts `json:"-"`
}

type FetchPlannerConfig struct {
	// InvocationInterval is how often the scheduler triggers a run.
	InvocationInterval time.Duration
	// RefreshWindow bounds how stale the odds board may get while no games
	// are active; odds are refreshed once per window.
	RefreshWindow time.Duration
}

// FetchPlanner gates provider calls on DB-observed game activity. Any live
// or starting-soon game buys a full odds+scores cycle; otherwise odds are
// refreshed only in the first invocation slice of each refresh window, and
// all other invocations skip entirely.
type FetchPlanner struct {
	gameRepo           game.Repository
	invocationInterval time.Duration
	refreshWindow      time.Duration
	logger             *logging.Logger
	now                func() time.Time
}

func NewFetchPlanner(gameRepo game.Repository, cfg FetchPlannerConfig, logger *logging.Logger) *FetchPlanner {
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.InvocationInterval
	if interval <= 0 {
		interval = defaultInvocationInterval
	}
	window := cfg.RefreshWindow
	if window < interval {
		window = defaultRefreshWindow
	}
	return &FetchPlanner{
		gameRepo:           gameRepo,
		invocationInterval: interval,
		refreshWindow:      window,
		logger:             logger,
		now:                time.Now,
	}
}

func (p *FetchPlanner) Plan(ctx context.Context) (FetchPlan, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchPlanner.Plan")
	defer span.End()

	now := p.now().UTC()
	counts, err := p.gameRepo.ActivityCounts(ctx, now)
	if err != nil {
		return FetchPlan{}, fmt.Errorf("query game activity: %w", err)
	}

	plan := FetchPlan{Counts: counts}
	switch {
	case counts.Active():
		plan.FetchOdds = true
		plan.FetchScores = true
		plan.Reason = fmt.Sprintf("active games: live=%d should_be_live=%d starting_soon=%d",
			counts.Live, counts.ShouldBeLive, counts.StartingSoon)
	case p.inRefreshSlice(now):
		plan.FetchOdds = true
		plan.Reason = "no active games, odds refresh slice"
	default:
		plan.Skip = true
		plan.Reason = "no active games, outside refresh slice"
	}

	p.logger.InfoContext(ctx, "fetch plan decided",
		"skip", plan.Skip, "fetch_odds", plan.FetchOdds, "fetch_scores", plan.FetchScores,
		"live", counts.Live, "should_be_live", counts.ShouldBeLive, "starting_soon", counts.StartingSoon)
	return plan, nil
}

// inRefreshSlice reports whether now falls in the first invocation-interval
// slice of the current refresh window, measured on the wall clock so every
// overlapping invocation agrees on window boundaries.
func (p *FetchPlanner) inRefreshSlice(now time.Time) bool {
	offset := now.Unix() % int64(p.refreshWindow/time.Second)
	return offset < int64(p.invocationInterval/time.Second)
}
