package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/game"
	"github.com/jmcauliffe/gamepulse/internal/domain/team"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
)

// Reconciler resolves provider team names and event times onto stored team
// and game rows, creating rows on first sighting. Concurrent invocations may
// race on creation; the unique name constraint plus catch-and-retry lookup
// is the only coordination.
type Reconciler struct {
	teamRepo team.Repository
	gameRepo game.Repository
	logger   *logging.Logger
}

func NewReconciler(teamRepo team.Repository, gameRepo game.Repository, logger *logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Reconciler{teamRepo: teamRepo, gameRepo: gameRepo, logger: logger}
}

// FindOrCreateTeam returns the team for an exact normalized name, inserting
// it on first sighting. A lost insert race surfaces as a unique violation
// and resolves by re-lookup. The bool reports whether a row was created.
func (r *Reconciler) FindOrCreateTeam(ctx context.Context, name, league string) (team.Team, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.FindOrCreateTeam")
	defer span.End()

	name = team.NormalizeName(name)
	if name == "" {
		return team.Team{}, false, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	existing, found, err := r.teamRepo.GetByName(ctx, name)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("lookup team name=%q: %w", name, err)
	}
	if found {
		return existing, false, nil
	}

	created, err := r.teamRepo.Insert(ctx, team.Team{Name: name, League: strings.TrimSpace(league)})
	if err == nil {
		return created, true, nil
	}
	if !stderrors.Is(err, team.ErrDuplicateName) {
		return team.Team{}, false, fmt.Errorf("insert team name=%q: %w", name, err)
	}

	// Lost the race; the winner's row must exist now.
	existing, found, err = r.teamRepo.GetByName(ctx, name)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("re-lookup team name=%q: %w", name, err)
	}
	if !found {
		return team.Team{}, false, fmt.Errorf("team name=%q reported duplicate but not found", name)
	}
	return existing, false, nil
}

// FindOrCreateGame returns the game for this ordered pair whose scheduled
// time falls within the dedupe window around commence, inserting an upcoming
// game on miss. The bool reports whether a row was created.
func (r *Reconciler) FindOrCreateGame(ctx context.Context, sportKey string, homeTeamID, awayTeamID int64, commence time.Time) (game.Game, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.FindOrCreateGame")
	defer span.End()

	if homeTeamID <= 0 || awayTeamID <= 0 {
		return game.Game{}, false, fmt.Errorf("%w: team ids must be greater than zero", ErrInvalidInput)
	}

	existing, found, err := r.gameRepo.FindByPairWithinWindow(ctx, homeTeamID, awayTeamID, commence, game.DedupeWindow)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("lookup game home=%d away=%d: %w", homeTeamID, awayTeamID, err)
	}
	if found {
		return existing, false, nil
	}

	created, err := r.gameRepo.Insert(ctx, game.Game{
		SportKey:      sportKey,
		HomeTeamID:    homeTeamID,
		AwayTeamID:    awayTeamID,
		Status:        game.StatusUpcoming,
		ScheduledTime: commence,
	})
	if err != nil {
		return game.Game{}, false, fmt.Errorf("insert game home=%d away=%d: %w", homeTeamID, awayTeamID, err)
	}
	return created, true, nil
}

// MatchTeam resolves a provider team name to a stored team without creating
// one: exact match first, then the lax substring matcher as fallback.
func (r *Reconciler) MatchTeam(ctx context.Context, name string) (team.Team, bool, error) {
	name = team.NormalizeName(name)
	if name == "" {
		return team.Team{}, false, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	exact, found, err := r.teamRepo.GetByName(ctx, name)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("lookup team name=%q: %w", name, err)
	}
	if found {
		return exact, true, nil
	}

	lax, found, err := r.teamRepo.GetByNameContains(ctx, name)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("lax lookup team name=%q: %w", name, err)
	}
	return lax, found, nil
}

// MatchGame resolves a score event to a stored game without creating one.
// The windowed pair lookup is primary; the unwindowed lookup is the legacy
// fallback and can false-positive when the same pairing repeats.
func (r *Reconciler) MatchGame(ctx context.Context, homeName, awayName string, commence time.Time) (game.Game, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.MatchGame")
	defer span.End()

	home, found, err := r.MatchTeam(ctx, homeName)
	if err != nil || !found {
		return game.Game{}, false, err
	}
	away, found, err := r.MatchTeam(ctx, awayName)
	if err != nil || !found {
		return game.Game{}, false, err
	}

	matched, found, err := r.gameRepo.FindByPairWithinWindow(ctx, home.ID, away.ID, commence, game.DedupeWindow)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("windowed game lookup home=%d away=%d: %w", home.ID, away.ID, err)
	}
	if found {
		return matched, true, nil
	}

	matched, found, err = r.gameRepo.FindLatestByPair(ctx, home.ID, away.ID)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("pair game lookup home=%d away=%d: %w", home.ID, away.ID, err)
	}
	return matched, found, nil
}
