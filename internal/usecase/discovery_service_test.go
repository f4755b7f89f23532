package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
	"github.com/jmcauliffe/gamepulse/internal/domain/game"
	"github.com/jmcauliffe/gamepulse/internal/domain/signal"
	"github.com/jmcauliffe/gamepulse/internal/domain/snapshot"
	"github.com/jmcauliffe/gamepulse/internal/domain/team"
	"github.com/jmcauliffe/gamepulse/internal/infrastructure/repository/memory"
	"github.com/jmcauliffe/gamepulse/internal/platform/cache"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
)

func expectationWith(gameID int64, spreadHome, totalValue float64, capturedAt time.Time) expectation.Expectation {
	return expectation.Expectation{
		GameID:     &gameID,
		SportKey:   signal.SportBasketballNBA,
		HomeTeam:   "Boston Celtics",
		AwayTeam:   "Miami Heat",
		SpreadHome: &spreadHome,
		TotalValue: &totalValue,
		Bookmaker:  "draftkings",
		Source:     "the-odds-api",
		CapturedAt: capturedAt,
	}
}

type discoveryFixture struct {
	teamRepo        *memory.TeamRepository
	gameRepo        *memory.GameRepository
	snapshotRepo    *memory.SnapshotRepository
	expectationRepo *memory.ExpectationRepository
	service         *DiscoveryService
}

func newDiscoveryFixture(t *testing.T) *discoveryFixture {
	t.Helper()
	f := &discoveryFixture{
		teamRepo:        memory.NewTeamRepository(),
		gameRepo:        memory.NewGameRepository(),
		snapshotRepo:    memory.NewSnapshotRepository(),
		expectationRepo: memory.NewExpectationRepository(),
	}
	f.service = NewDiscoveryService(
		f.gameRepo, f.teamRepo, f.snapshotRepo, f.expectationRepo,
		cache.NewStore(time.Minute), logging.NewNop(),
	)
	return f
}

func (f *discoveryFixture) seedGame(t *testing.T, homeName, awayName string, scheduled time.Time) game.Game {
	t.Helper()
	ctx := context.Background()

	home, err := f.teamRepo.Insert(ctx, team.Team{Name: homeName, League: "NBA"})
	require.NoError(t, err)
	away, err := f.teamRepo.Insert(ctx, team.Team{Name: awayName, League: "NBA"})
	require.NoError(t, err)

	row, err := f.gameRepo.Insert(ctx, game.Game{
		SportKey:      signal.SportBasketballNBA,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		Status:        game.StatusLive,
		ScheduledTime: scheduled,
	})
	require.NoError(t, err)
	return row
}

func TestListGamesRanksByPriorityWithoutSpoilers(t *testing.T) {
	f := newDiscoveryFixture(t)
	ctx := context.Background()
	base := time.Date(2026, time.January, 10, 19, 0, 0, 0, time.UTC)

	dull := f.seedGame(t, "Boston Celtics", "Miami Heat", base)
	tense := f.seedGame(t, "Los Angeles Lakers", "Golden State Warriors", base.Add(time.Hour))
	unseen := f.seedGame(t, "Chicago Bulls", "Detroit Pistons", base.Add(2*time.Hour))

	_, err := f.snapshotRepo.Insert(ctx, snapshot.Snapshot{
		GameID: dull.ID, CapturedAt: base.Add(time.Hour),
		TensionScore: 10, Stage: signal.StageMid, ActivityLevel: signal.ActivityLow,
		HomeScore: intPtr(80), AwayScore: intPtr(55),
	})
	require.NoError(t, err)
	_, err = f.snapshotRepo.Insert(ctx, snapshot.Snapshot{
		GameID: tense.ID, CapturedAt: base.Add(time.Hour),
		TensionScore: 88, Stage: signal.StageLate, ActivityLevel: signal.ActivityHigh,
		HomeScore: intPtr(99), AwayScore: intPtr(97),
	})
	require.NoError(t, err)

	got, err := f.service.ListGames(ctx, ListGamesInput{SportKey: signal.SportBasketballNBA})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, tense.ID, got[0].GameID)
	assert.Equal(t, signal.PriorityHigh, got[0].Priority)
	assert.Equal(t, unseen.ID, got[1].GameID)
	assert.Equal(t, signal.PriorityMedium, got[1].Priority)
	assert.Equal(t, dull.ID, got[2].GameID)
	assert.Equal(t, signal.PriorityLow, got[2].Priority)

	for _, summary := range got {
		assert.Nil(t, summary.HomeScore, "scores must stay hidden for %d", summary.GameID)
		assert.Nil(t, summary.AwayScore)
		assert.Nil(t, summary.TensionScore)
		assert.Nil(t, summary.CloseFinish)
	}
	assert.Equal(t, "Los Angeles Lakers", got[0].HomeTeam)
	assert.Equal(t, "NBA", got[0].League)
}

func TestListGamesReveal(t *testing.T) {
	f := newDiscoveryFixture(t)
	ctx := context.Background()
	base := time.Date(2026, time.January, 10, 19, 0, 0, 0, time.UTC)

	row := f.seedGame(t, "Boston Celtics", "Miami Heat", base)
	_, err := f.snapshotRepo.Insert(ctx, snapshot.Snapshot{
		GameID: row.ID, CapturedAt: base.Add(time.Hour),
		TensionScore: 64, Stage: signal.StageLate, ActivityLevel: signal.ActivityMedium,
		HomeScore: intPtr(90), AwayScore: intPtr(88),
	})
	require.NoError(t, err)

	got, err := f.service.ListGames(ctx, ListGamesInput{SportKey: signal.SportBasketballNBA, Reveal: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].HomeScore)
	assert.Equal(t, 90, *got[0].HomeScore)
	require.NotNil(t, got[0].TensionScore)
	assert.Equal(t, 64, *got[0].TensionScore)
}

func TestListGamesValidation(t *testing.T) {
	f := newDiscoveryFixture(t)

	_, err := f.service.ListGames(context.Background(), ListGamesInput{SportKey: "cricket_odi"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.ListGames(context.Background(), ListGamesInput{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetGame(t *testing.T) {
	f := newDiscoveryFixture(t)
	ctx := context.Background()
	base := time.Date(2026, time.January, 10, 19, 0, 0, 0, time.UTC)

	row := f.seedGame(t, "Boston Celtics", "Miami Heat", base)
	gameID := row.ID
	spread := -2.5
	total := 221.5
	_, err := f.expectationRepo.Insert(ctx, expectationWith(gameID, spread, total, base))
	require.NoError(t, err)

	detail, err := f.service.GetGame(ctx, gameID, false)
	require.NoError(t, err)
	assert.Equal(t, "Boston Celtics", detail.HomeTeam)
	require.NotNil(t, detail.SpreadHome)
	assert.InDelta(t, spread, *detail.SpreadHome, 0.001)
	require.NotNil(t, detail.TotalValue)
	assert.InDelta(t, total, *detail.TotalValue, 0.001)
	assert.Equal(t, signal.PriorityMedium, detail.Priority)

	_, err = f.service.GetGame(ctx, 9999, false)
	assert.ErrorIs(t, err, ErrNotFound)
}
