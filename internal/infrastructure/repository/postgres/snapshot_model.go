package postgres

import (
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/signal"
	"github.com/jmcauliffe/gamepulse/internal/domain/snapshot"
)

type snapshotTableModel struct {
	ID             int64     `db:"id"`
	GameID         int64     `db:"game_id"`
	CapturedAt     time.Time `db:"captured_at"`
	TensionScore   int       `db:"tension_score"`
	MomentumShifts int       `db:"momentum_shifts"`
	LeadChanges    int       `db:"lead_changes"`
	CloseFinish    bool      `db:"close_finish"`
	IsFinal        bool      `db:"is_final"`
	Stage          string    `db:"stage"`
	Competitive    bool      `db:"competitive"`
	ActivityLevel  string    `db:"activity_level"`
	HomeScore      *int      `db:"home_score"`
	AwayScore      *int      `db:"away_score"`
}

func (m snapshotTableModel) toDomain() snapshot.Snapshot {
	return snapshot.Snapshot{
		ID:             m.ID,
		GameID:         m.GameID,
		CapturedAt:     m.CapturedAt,
		TensionScore:   m.TensionScore,
		MomentumShifts: m.MomentumShifts,
		LeadChanges:    m.LeadChanges,
		CloseFinish:    m.CloseFinish,
		IsFinal:        m.IsFinal,
		Stage:          signal.Stage(m.Stage),
		Competitive:    m.Competitive,
		ActivityLevel:  signal.ActivityLevel(m.ActivityLevel),
		HomeScore:      m.HomeScore,
		AwayScore:      m.AwayScore,
	}
}

const snapshotColumns = `id, game_id, captured_at, tension_score, momentum_shifts, lead_changes, close_finish, is_final, stage, competitive, activity_level, home_score, away_score`
