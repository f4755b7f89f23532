package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
)

// ExpectationRepository is append-only by contract; it deliberately exposes
// no update or delete statements.
type ExpectationRepository struct {
	db *sqlx.DB
}

func NewExpectationRepository(db *sqlx.DB) *ExpectationRepository {
	return &ExpectationRepository{db: db}
}

func (r *ExpectationRepository) Insert(ctx context.Context, item expectation.Expectation) (expectation.Expectation, error) {
	query := `
		INSERT INTO game_expectations (
			game_id, sport_key, external_event_id, commence_time, home_team, away_team,
			spread_home, spread_away, total_value, total_over_price, total_under_price,
			bookmaker, source, captured_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + expectationColumns

	var row expectationTableModel
	err := r.db.GetContext(ctx, &row, query,
		item.GameID, item.SportKey, item.ExternalEventID, item.CommenceTime,
		item.HomeTeam, item.AwayTeam, item.SpreadHome, item.SpreadAway,
		item.TotalValue, item.TotalOverPrice, item.TotalUnderPrice,
		item.Bookmaker, item.Source, item.CapturedAt,
	)
	if err != nil {
		return expectation.Expectation{}, fmt.Errorf("insert expectation: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ExpectationRepository) LatestByGame(ctx context.Context, gameID int64) (expectation.Expectation, bool, error) {
	query := `
		SELECT ` + expectationColumns + `
		FROM game_expectations
		WHERE game_id = $1
		ORDER BY captured_at DESC
		LIMIT 1`

	var row expectationTableModel
	if err := r.db.GetContext(ctx, &row, query, gameID); err != nil {
		if isNotFound(err) {
			return expectation.Expectation{}, false, nil
		}
		return expectation.Expectation{}, false, fmt.Errorf("select latest expectation: %w", err)
	}
	return row.toDomain(), true, nil
}
