package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcauliffe/gamepulse/internal/domain/game"
	"github.com/jmcauliffe/gamepulse/internal/domain/team"
	"github.com/jmcauliffe/gamepulse/internal/infrastructure/repository/memory"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
)

func TestReconcilerFindOrCreateTeam(t *testing.T) {
	teamRepo := memory.NewTeamRepository()
	gameRepo := memory.NewGameRepository()
	reconciler := NewReconciler(teamRepo, gameRepo, logging.NewNop())
	ctx := context.Background()

	first, created, err := reconciler.FindOrCreateTeam(ctx, "  Boston Celtics ", "NBA")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Boston Celtics", first.Name)
	assert.Equal(t, "NBA", first.League)

	second, created, err := reconciler.FindOrCreateTeam(ctx, "Boston Celtics", "NBA")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	_, _, err = reconciler.FindOrCreateTeam(ctx, "   ", "NBA")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// racingTeamRepo simulates losing the insert race: the first lookup misses,
// the insert reports a duplicate, and the re-lookup finds the winner's row.
type racingTeamRepo struct {
	team.Repository
	winner  team.Team
	lookups int
}

func (r *racingTeamRepo) GetByName(_ context.Context, _ string) (team.Team, bool, error) {
	r.lookups++
	if r.lookups == 1 {
		return team.Team{}, false, nil
	}
	return r.winner, true, nil
}

func (r *racingTeamRepo) Insert(_ context.Context, _ team.Team) (team.Team, error) {
	return team.Team{}, team.ErrDuplicateName
}

func TestReconcilerFindOrCreateTeamLostRace(t *testing.T) {
	winner := team.Team{ID: 7, Name: "Miami Heat", League: "NBA"}
	repo := &racingTeamRepo{winner: winner}
	reconciler := NewReconciler(repo, memory.NewGameRepository(), logging.NewNop())

	got, created, err := reconciler.FindOrCreateTeam(context.Background(), "Miami Heat", "NBA")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, 2, repo.lookups)
}

func TestReconcilerFindOrCreateGameDedupeWindow(t *testing.T) {
	teamRepo := memory.NewTeamRepository()
	gameRepo := memory.NewGameRepository()
	reconciler := NewReconciler(teamRepo, gameRepo, logging.NewNop())
	ctx := context.Background()

	commence := time.Date(2026, time.January, 10, 19, 0, 0, 0, time.UTC)
	first, created, err := reconciler.FindOrCreateGame(ctx, "basketball_nba", 1, 2, commence)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, game.StatusUpcoming, first.Status)

	// A commence time drifting inside the window resolves to the same game.
	same, created, err := reconciler.FindOrCreateGame(ctx, "basketball_nba", 1, 2, commence.Add(5*time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, same.ID)

	// The reverse pairing is a different game even at the same time.
	reversed, created, err := reconciler.FindOrCreateGame(ctx, "basketball_nba", 2, 1, commence)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, reversed.ID)

	// Outside the window, the same pairing is a new meeting.
	next, created, err := reconciler.FindOrCreateGame(ctx, "basketball_nba", 1, 2, commence.Add(48*time.Hour))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestReconcilerMatchGame(t *testing.T) {
	teamRepo := memory.NewTeamRepository()
	gameRepo := memory.NewGameRepository()
	reconciler := NewReconciler(teamRepo, gameRepo, logging.NewNop())
	ctx := context.Background()

	home, err := teamRepo.Insert(ctx, team.Team{Name: "Los Angeles Lakers", League: "NBA"})
	require.NoError(t, err)
	away, err := teamRepo.Insert(ctx, team.Team{Name: "Golden State Warriors", League: "NBA"})
	require.NoError(t, err)

	commence := time.Date(2026, time.January, 12, 22, 0, 0, 0, time.UTC)
	stored, err := gameRepo.Insert(ctx, game.Game{
		SportKey:      "basketball_nba",
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		Status:        game.StatusUpcoming,
		ScheduledTime: commence,
	})
	require.NoError(t, err)

	t.Run("exact names", func(t *testing.T) {
		matched, found, err := reconciler.MatchGame(ctx, "Los Angeles Lakers", "Golden State Warriors", commence)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, stored.ID, matched.ID)
	})

	t.Run("lax substring fallback", func(t *testing.T) {
		matched, found, err := reconciler.MatchGame(ctx, "Lakers", "Warriors", commence.Add(time.Hour))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, stored.ID, matched.ID)
	})

	t.Run("unwindowed pair fallback", func(t *testing.T) {
		matched, found, err := reconciler.MatchGame(ctx, "Los Angeles Lakers", "Golden State Warriors", commence.Add(30*24*time.Hour))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, stored.ID, matched.ID)
	})

	t.Run("unknown team drops the event", func(t *testing.T) {
		_, found, err := reconciler.MatchGame(ctx, "Chicago Bulls", "Golden State Warriors", commence)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
