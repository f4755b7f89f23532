package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jmcauliffe/gamepulse/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	const query = `SELECT id, name, league, created_at FROM teams WHERE name = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by name: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByNameContains(ctx context.Context, name string) (team.Team, bool, error) {
	// Containment in either direction so "Lakers" matches "Los Angeles
	// Lakers" and vice versa. Oldest row wins to keep matches stable.
	const query = `
		SELECT id, name, league, created_at
		FROM teams
		WHERE name ILIKE '%' || $1 || '%' OR $1 ILIKE '%' || name || '%'
		ORDER BY id
		LIMIT 1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by name containment: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	const query = `SELECT id, name, league, created_at FROM teams WHERE id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	if len(ids) == 0 {
		return []team.Team{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, league, created_at FROM teams WHERE id IN (?) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("build select teams by ids query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by ids: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) (team.Team, error) {
	const query = `
		INSERT INTO teams (name, league)
		VALUES ($1, $2)
		RETURNING id, name, league, created_at`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, item.Name, item.League); err != nil {
		if isUniqueViolation(err) {
			return team.Team{}, team.ErrDuplicateName
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return row.toDomain(), nil
}
