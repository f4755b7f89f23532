package usecase

import (
	"context"
	"fmt"

	"github.com/jmcauliffe/gamepulse/internal/domain/favorite"
	"github.com/jmcauliffe/gamepulse/internal/domain/team"
)

// FavoriteService manages a user's followed teams.
type FavoriteService struct {
	favoriteRepo favorite.Repository
	teamRepo     team.Repository
}

func NewFavoriteService(favoriteRepo favorite.Repository, teamRepo team.Repository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, teamRepo: teamRepo}
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID int64) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.ListFavorites")
	defer span.End()

	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be greater than zero", ErrInvalidInput)
	}
	ids, err := s.favoriteRepo.ListTeamIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite team ids user_id=%d: %w", userID, err)
	}
	if len(ids) == 0 {
		return []team.Team{}, nil
	}
	teams, err := s.teamRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list favorite teams user_id=%d: %w", userID, err)
	}
	return teams, nil
}

// SaveFavorites replaces the user's followed set wholesale. Every team id
// must reference an existing team.
func (s *FavoriteService) SaveFavorites(ctx context.Context, userID int64, teamIDs []int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.SaveFavorites")
	defer span.End()

	if userID <= 0 {
		return fmt.Errorf("%w: user id must be greater than zero", ErrInvalidInput)
	}
	deduped := make([]int64, 0, len(teamIDs))
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id <= 0 {
			return fmt.Errorf("%w: team ids must be greater than zero", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	if len(deduped) > 0 {
		teams, err := s.teamRepo.ListByIDs(ctx, deduped)
		if err != nil {
			return fmt.Errorf("validate favorite teams user_id=%d: %w", userID, err)
		}
		if len(teams) != len(deduped) {
			return fmt.Errorf("%w: one or more team ids do not exist", ErrInvalidInput)
		}
	}

	if err := s.favoriteRepo.Replace(ctx, userID, deduped); err != nil {
		return fmt.Errorf("replace favorites user_id=%d: %w", userID, err)
	}
	return nil
}
