package postgres

import (
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/game"
)

type gameTableModel struct {
	ID            int64      `db:"id"`
	SportKey      string     `db:"sport_key"`
	HomeTeamID    int64      `db:"home_team_id"`
	AwayTeamID    int64      `db:"away_team_id"`
	Status        string     `db:"status"`
	ScheduledTime time.Time  `db:"scheduled_time"`
	CompletedAt   *time.Time `db:"completed_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:            m.ID,
		SportKey:      m.SportKey,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		Status:        m.Status,
		ScheduledTime: m.ScheduledTime,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

const gameColumns = `id, sport_key, home_team_id, away_team_id, status, scheduled_time, completed_at, created_at, updated_at`
