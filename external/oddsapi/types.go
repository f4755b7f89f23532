package oddsapi

import "time"

const (
	marketSpreads = "spreads"
	marketTotals  = "totals"

	outcomeOver  = "Over"
	outcomeUnder = "Under"
)

// Event is a provider odds event. Required fields are validated after
// decoding; a payload failing validation aborts the whole fetch rather
// than being skipped, since it signals a provider schema change.
type Event struct {
	ID           string      `json:"id" validate:"required"`
	SportKey     string      `json:"sport_key" validate:"required"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time" validate:"required"`
	HomeTeam     string      `json:"home_team" validate:"required"`
	AwayTeam     string      `json:"away_team" validate:"required"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// ScoreEvent is a provider score entry. Scores may be null for games that
// have not started; individual score values arrive as strings.
type ScoreEvent struct {
	ID           string      `json:"id" validate:"required"`
	SportKey     string      `json:"sport_key" validate:"required"`
	CommenceTime time.Time   `json:"commence_time"`
	Completed    bool        `json:"completed"`
	HomeTeam     string      `json:"home_team" validate:"required"`
	AwayTeam     string      `json:"away_team" validate:"required"`
	Scores       []TeamScore `json:"scores"`
	LastUpdate   *time.Time  `json:"last_update"`
}

type TeamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}
