package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
	"github.com/jmcauliffe/gamepulse/internal/domain/game"
	"github.com/jmcauliffe/gamepulse/internal/domain/signal"
	"github.com/jmcauliffe/gamepulse/internal/domain/snapshot"
	"github.com/jmcauliffe/gamepulse/internal/domain/team"
	"github.com/jmcauliffe/gamepulse/internal/platform/cache"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
)

const defaultListLimit = 50

// GameSummary is the spoiler-free discovery row. Scores and tension leak
// the outcome and only appear when the caller explicitly opts in.
type GameSummary struct {
	GameID        int64                `json:"game_id"`
	SportKey      string               `json:"sport_key"`
	League        string               `json:"league"`
	HomeTeam      string               `json:"home_team"`
	AwayTeam      string               `json:"away_team"`
	Status        string               `json:"status"`
	ScheduledTime time.Time            `json:"scheduled_time"`
	Priority      signal.Priority      `json:"priority"`
	Stage         signal.Stage         `json:"stage,omitempty"`
	ActivityLevel signal.ActivityLevel `json:"activity_level,omitempty"`

	// Spoiler fields, populated only on reveal.
	HomeScore    *int  `json:"home_score,omitempty"`
	AwayScore    *int  `json:"away_score,omitempty"`
	TensionScore *int  `json:"tension_score,omitempty"`
	CloseFinish  *bool `json:"close_finish,omitempty"`
}

// GameDetail adds the pre-game market view. Betting lines are published
// before tip-off and are not spoilers.
type GameDetail struct {
	GameSummary
	SpreadHome  *float64   `json:"spread_home,omitempty"`
	SpreadAway  *float64   `json:"spread_away,omitempty"`
	TotalValue  *float64   `json:"total_value,omitempty"`
	Bookmaker   string     `json:"bookmaker,omitempty"`
	QuotedAt    *time.Time `json:"quoted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ListGamesInput struct {
	SportKey string
	Status   string
	Reveal   bool
	Limit    int
}

// DiscoveryService serves the read side: priority-ranked game listings
// derived at read time from the current snapshot per game.
type DiscoveryService struct {
	gameRepo        game.Repository
	teamRepo        team.Repository
	snapshotRepo    snapshot.Repository
	expectationRepo expectation.Repository
	listCache       *cache.Store
	logger          *logging.Logger
}

func NewDiscoveryService(
	gameRepo game.Repository,
	teamRepo team.Repository,
	snapshotRepo snapshot.Repository,
	expectationRepo expectation.Repository,
	listCache *cache.Store,
	logger *logging.Logger,
) *DiscoveryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DiscoveryService{
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		snapshotRepo:    snapshotRepo,
		expectationRepo: expectationRepo,
		listCache:       listCache,
		logger:          logger,
	}
}

// ListGames returns discovery rows ranked by priority, then start time.
func (s *DiscoveryService) ListGames(ctx context.Context, input ListGamesInput) ([]GameSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiscoveryService.ListGames")
	defer span.End()

	sportKey := strings.TrimSpace(input.SportKey)
	if sportKey != "" {
		if _, ok := signal.ParamsForSport(sportKey); !ok {
			return nil, fmt.Errorf("%w: unsupported sport key %q", ErrInvalidInput, sportKey)
		}
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != "" && status != game.StatusUpcoming && status != game.StatusLive && status != game.StatusCompleted {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}
	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	if s.listCache == nil {
		return s.listGamesUncached(ctx, sportKey, status, limit, input.Reveal)
	}

	key := fmt.Sprintf("games:%s:%s:%d:%t", sportKey, status, limit, input.Reveal)
	loaded, err := s.listCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.listGamesUncached(ctx, sportKey, status, limit, input.Reveal)
	})
	if err != nil {
		return nil, err
	}
	summaries, ok := loaded.([]GameSummary)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", loaded)
	}
	return summaries, nil
}

func (s *DiscoveryService) listGamesUncached(ctx context.Context, sportKey, status string, limit int, reveal bool) ([]GameSummary, error) {
	sports := []string{sportKey}
	if sportKey == "" {
		sports = signal.SupportedSports()
	}

	games := make([]game.Game, 0, limit)
	for _, sport := range sports {
		rows, err := s.gameRepo.ListBySport(ctx, sport, limit)
		if err != nil {
			return nil, fmt.Errorf("list games sport=%s: %w", sport, err)
		}
		games = append(games, rows...)
	}

	teamsByID, err := s.loadTeams(ctx, games)
	if err != nil {
		return nil, err
	}

	summaries := make([]GameSummary, 0, len(games))
	for _, row := range games {
		if status != "" && row.Status != status {
			continue
		}
		summary, err := s.buildSummary(ctx, row, teamsByID, reveal)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		left, right := priorityRank(summaries[i].Priority), priorityRank(summaries[j].Priority)
		if left != right {
			return left > right
		}
		return summaries[i].ScheduledTime.Before(summaries[j].ScheduledTime)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// GetGame returns one game with current snapshot meta and the latest quote.
func (s *DiscoveryService) GetGame(ctx context.Context, gameID int64, reveal bool) (GameDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiscoveryService.GetGame")
	defer span.End()

	if gameID <= 0 {
		return GameDetail{}, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	row, found, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return GameDetail{}, fmt.Errorf("lookup game id=%d: %w", gameID, err)
	}
	if !found {
		return GameDetail{}, fmt.Errorf("%w: game id=%d", ErrNotFound, gameID)
	}

	teamsByID, err := s.loadTeams(ctx, []game.Game{row})
	if err != nil {
		return GameDetail{}, err
	}
	summary, err := s.buildSummary(ctx, row, teamsByID, reveal)
	if err != nil {
		return GameDetail{}, err
	}

	detail := GameDetail{GameSummary: summary, CompletedAt: row.CompletedAt}
	quote, found, err := s.expectationRepo.LatestByGame(ctx, gameID)
	if err != nil {
		return GameDetail{}, fmt.Errorf("lookup expectation game_id=%d: %w", gameID, err)
	}
	if found {
		detail.SpreadHome = quote.SpreadHome
		detail.SpreadAway = quote.SpreadAway
		detail.TotalValue = quote.TotalValue
		detail.Bookmaker = quote.Bookmaker
		quotedAt := quote.CapturedAt
		detail.QuotedAt = &quotedAt
	}
	return detail, nil
}

func (s *DiscoveryService) loadTeams(ctx context.Context, games []game.Game) (map[int64]team.Team, error) {
	ids := make([]int64, 0, len(games)*2)
	seen := make(map[int64]struct{}, len(games)*2)
	for _, row := range games {
		for _, id := range []int64{row.HomeTeamID, row.AwayTeamID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[int64]team.Team{}, nil
	}

	teams, err := s.teamRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	byID := make(map[int64]team.Team, len(teams))
	for _, row := range teams {
		byID[row.ID] = row
	}
	return byID, nil
}

func (s *DiscoveryService) buildSummary(ctx context.Context, row game.Game, teamsByID map[int64]team.Team, reveal bool) (GameSummary, error) {
	summary := GameSummary{
		GameID:        row.ID,
		SportKey:      row.SportKey,
		League:        signal.LeagueForSport(row.SportKey),
		HomeTeam:      teamsByID[row.HomeTeamID].Name,
		AwayTeam:      teamsByID[row.AwayTeamID].Name,
		Status:        row.Status,
		ScheduledTime: row.ScheduledTime,
	}

	current, found, err := s.snapshotRepo.Current(ctx, row.ID)
	if err != nil {
		return GameSummary{}, fmt.Errorf("lookup current snapshot game_id=%d: %w", row.ID, err)
	}
	if !found {
		summary.Priority = signal.RollupPriority(nil)
		return summary, nil
	}

	summary.Priority = signal.RollupPriority(current.PriorityInput())
	summary.Stage = current.Stage
	summary.ActivityLevel = current.ActivityLevel
	if reveal {
		summary.HomeScore = current.HomeScore
		summary.AwayScore = current.AwayScore
		tension := current.TensionScore
		summary.TensionScore = &tension
		closeFinish := current.CloseFinish
		summary.CloseFinish = &closeFinish
	}
	return summary, nil
}

func priorityRank(p signal.Priority) int {
	switch p {
	case signal.PriorityHigh:
		return 2
	case signal.PriorityMedium:
		return 1
	default:
		return 0
	}
}
