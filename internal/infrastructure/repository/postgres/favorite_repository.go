package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) ListTeamIDs(ctx context.Context, userID int64) ([]int64, error) {
	const query = `SELECT team_id FROM favorites WHERE user_id = $1 ORDER BY team_id`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("select favorite team ids: %w", err)
	}
	return ids, nil
}

// Replace swaps the user's whole favorite set in one transaction so a
// concurrent reader never observes a half-written list.
func (r *FavoriteRepository) Replace(ctx context.Context, userID int64, teamIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace favorites: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	for _, teamID := range teamIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO favorites (user_id, team_id) VALUES ($1, $2)`, userID, teamID)
		if err != nil {
			return fmt.Errorf("insert favorite team_id=%d: %w", teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace favorites: %w", err)
	}
	return nil
}
