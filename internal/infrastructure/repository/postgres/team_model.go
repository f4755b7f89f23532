package postgres

import (
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/team"
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	League    string    `db:"league"`
	CreatedAt time.Time `db:"created_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:        m.ID,
		Name:      m.Name,
		League:    m.League,
		CreatedAt: m.CreatedAt,
	}
}
