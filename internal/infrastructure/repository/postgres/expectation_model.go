package postgres

import (
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
)

type expectationTableModel struct {
	ID              int64     `db:"id"`
	GameID          *int64    `db:"game_id"`
	SportKey        string    `db:"sport_key"`
	ExternalEventID string    `db:"external_event_id"`
	CommenceTime    time.Time `db:"commence_time"`
	HomeTeam        string    `db:"home_team"`
	AwayTeam        string    `db:"away_team"`
	SpreadHome      *float64  `db:"spread_home"`
	SpreadAway      *float64  `db:"spread_away"`
	TotalValue      *float64  `db:"total_value"`
	TotalOverPrice  *float64  `db:"total_over_price"`
	TotalUnderPrice *float64  `db:"total_under_price"`
	Bookmaker       string    `db:"bookmaker"`
	Source          string    `db:"source"`
	CapturedAt      time.Time `db:"captured_at"`
}

func (m expectationTableModel) toDomain() expectation.Expectation {
	return expectation.Expectation{
		ID:              m.ID,
		GameID:          m.GameID,
		SportKey:        m.SportKey,
		ExternalEventID: m.ExternalEventID,
		CommenceTime:    m.CommenceTime,
		HomeTeam:        m.HomeTeam,
		AwayTeam:        m.AwayTeam,
		SpreadHome:      m.SpreadHome,
		SpreadAway:      m.SpreadAway,
		TotalValue:      m.TotalValue,
		TotalOverPrice:  m.TotalOverPrice,
		TotalUnderPrice: m.TotalUnderPrice,
		Bookmaker:       m.Bookmaker,
		Source:          m.Source,
		CapturedAt:      m.CapturedAt,
	}
}

const expectationColumns = `id, game_id, sport_key, external_event_id, commence_time, home_team, away_team, spread_home, spread_away, total_value, total_over_price, total_under_price, bookmaker, source, captured_at`
