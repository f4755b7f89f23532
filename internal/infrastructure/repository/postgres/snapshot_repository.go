package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jmcauliffe/gamepulse/internal/domain/snapshot"
)

// SnapshotRepository is append-only by contract.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Insert(ctx context.Context, item snapshot.Snapshot) (snapshot.Snapshot, error) {
	query := `
		INSERT INTO game_state_snapshots (
			game_id, captured_at, tension_score, momentum_shifts, lead_changes,
			close_finish, is_final, stage, competitive, activity_level, home_score, away_score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + snapshotColumns

	var row snapshotTableModel
	err := r.db.GetContext(ctx, &row, query,
		item.GameID, item.CapturedAt, item.TensionScore, item.MomentumShifts,
		item.LeadChanges, item.CloseFinish, item.IsFinal, string(item.Stage),
		item.Competitive, string(item.ActivityLevel), item.HomeScore, item.AwayScore,
	)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SnapshotRepository) ListByGame(ctx context.Context, gameID int64) ([]snapshot.Snapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM game_state_snapshots
		WHERE game_id = $1
		ORDER BY captured_at`

	var rows []snapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, gameID); err != nil {
		return nil, fmt.Errorf("select snapshots by game: %w", err)
	}

	out := make([]snapshot.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SnapshotRepository) Latest(ctx context.Context, gameID int64) (snapshot.Snapshot, bool, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM game_state_snapshots
		WHERE game_id = $1
		ORDER BY captured_at DESC
		LIMIT 1`

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, gameID); err != nil {
		if isNotFound(err) {
			return snapshot.Snapshot{}, false, nil
		}
		return snapshot.Snapshot{}, false, fmt.Errorf("select latest snapshot: %w", err)
	}
	return row.toDomain(), true, nil
}

// Current prefers the earliest final row, falling back to the most recently
// captured when no final exists.
func (r *SnapshotRepository) Current(ctx context.Context, gameID int64) (snapshot.Snapshot, bool, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM game_state_snapshots
		WHERE game_id = $1 AND is_final
		ORDER BY captured_at
		LIMIT 1`

	var row snapshotTableModel
	err := r.db.GetContext(ctx, &row, query, gameID)
	if err == nil {
		return row.toDomain(), true, nil
	}
	if !isNotFound(err) {
		return snapshot.Snapshot{}, false, fmt.Errorf("select final snapshot: %w", err)
	}
	return r.Latest(ctx, gameID)
}

func (r *SnapshotRepository) HasFinal(ctx context.Context, gameID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM game_state_snapshots WHERE game_id = $1 AND is_final)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, gameID); err != nil {
		return false, fmt.Errorf("check final snapshot: %w", err)
	}
	return exists, nil
}
