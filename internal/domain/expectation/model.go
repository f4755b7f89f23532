package expectation

import "time"

// Expectation is one captured odds quote (spread/total) for a game at a
// point in time. Rows are append-only: written once per ingestion cycle per
// event, never mutated, never deleted. The "current" view is the row with
// the maximum CapturedAt per game.
type Expectation struct {
	ID              int64
	GameID          *int64
	SportKey        string
	ExternalEventID string
	CommenceTime    time.Time
	HomeTeam        string
	AwayTeam        string
	SpreadHome      *float64
	SpreadAway      *float64
	TotalValue      *float64
	TotalOverPrice  *float64
	TotalUnderPrice *float64
	Bookmaker       string
	Source          string
	CapturedAt      time.Time
}

// HasSpread reports whether the quote carries a usable spread market.
func (e Expectation) HasSpread() bool {
	return e.SpreadHome != nil && e.SpreadAway != nil
}

// HasTotal reports whether any part of the totals market was captured.
func (e Expectation) HasTotal() bool {
	return e.TotalValue != nil || e.TotalOverPrice != nil || e.TotalUnderPrice != nil
}
