package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jmcauliffe/gamepulse/internal/domain/game"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) FindByPairWithinWindow(ctx context.Context, homeTeamID, awayTeamID int64, commence time.Time, window time.Duration) (game.Game, bool, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE home_team_id = $1 AND away_team_id = $2
		  AND scheduled_time BETWEEN $3 AND $4
		ORDER BY scheduled_time
		LIMIT 1`

	var row gameTableModel
	err := r.db.GetContext(ctx, &row, query, homeTeamID, awayTeamID, commence.Add(-window), commence.Add(window))
	if err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by pair within window: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) FindLatestByPair(ctx context.Context, homeTeamID, awayTeamID int64) (game.Game, bool, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE home_team_id = $1 AND away_team_id = $2
		ORDER BY scheduled_time DESC
		LIMIT 1`

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, homeTeamID, awayTeamID); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by pair: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) Insert(ctx context.Context, item game.Game) (game.Game, error) {
	query := `
		INSERT INTO games (sport_key, home_team_id, away_team_id, status, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + gameColumns

	var row gameTableModel
	err := r.db.GetContext(ctx, &row, query, item.SportKey, item.HomeTeamID, item.AwayTeamID, item.Status, item.ScheduledTime)
	if err != nil {
		return game.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return row.toDomain(), nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, id int64, status string, completedAt *time.Time) error {
	// completed_at is write-once: COALESCE keeps the first completion stamp
	// if a later event re-reports the transition.
	const query = `
		UPDATE games
		SET status = $2,
		    completed_at = COALESCE(completed_at, $3),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, completedAt)
	if err != nil {
		return fmt.Errorf("update game status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game id=%d not found", id)
	}
	return nil
}

func (r *GameRepository) ListBySport(ctx context.Context, sportKey string, limit int) ([]game.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE sport_key = $1
		ORDER BY scheduled_time DESC
		LIMIT $2`

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, sportKey, limit); err != nil {
		return nil, fmt.Errorf("select games by sport: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) ActivityCounts(ctx context.Context, now time.Time) (game.ActivityCounts, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'live') AS live,
			COUNT(*) FILTER (WHERE status = 'upcoming' AND scheduled_time >= $1::timestamptz - interval '3 hours' AND scheduled_time <= $1::timestamptz) AS should_be_live,
			COUNT(*) FILTER (WHERE status = 'upcoming' AND scheduled_time > $1::timestamptz AND scheduled_time <= $1::timestamptz + interval '1 hour') AS starting_soon
		FROM games`

	var row struct {
		Live         int `db:"live"`
		ShouldBeLive int `db:"should_be_live"`
		StartingSoon int `db:"starting_soon"`
	}
	if err := r.db.GetContext(ctx, &row, query, now); err != nil {
		return game.ActivityCounts{}, fmt.Errorf("select game activity counts: %w", err)
	}
	return game.ActivityCounts{
		Live:         row.Live,
		ShouldBeLive: row.ShouldBeLive,
		StartingSoon: row.StartingSoon,
	}, nil
}
