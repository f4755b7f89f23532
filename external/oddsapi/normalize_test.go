package oddsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func spreadsMarket(homeTeam string, homePoint float64) Market {
	return Market{Key: marketSpreads, Outcomes: []Outcome{
		{Name: homeTeam, Price: -110, Point: floatPtr(homePoint)},
		{Name: "Someone Else", Price: -110, Point: floatPtr(-homePoint)},
	}}
}

func totalsMarket(point float64) Market {
	return Market{Key: marketTotals, Outcomes: []Outcome{
		{Name: outcomeOver, Price: -108, Point: floatPtr(point)},
		{Name: outcomeUnder, Price: -112, Point: floatPtr(point)},
	}}
}

func baseEvent(bookmakers ...Bookmaker) Event {
	return Event{
		ID:           "evt-1",
		SportKey:     "basketball_nba",
		CommenceTime: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "Miami Heat",
		Bookmakers:   bookmakers,
	}
}

func TestNormalizeEventZeroBookmakers(t *testing.T) {
	got := normalizeEvent(baseEvent(), defaultMarkets, defaultPreferredBookmakers, time.Now())
	assert.Nil(t, got)
}

func TestNormalizeEventNoRequiredMarketOverlap(t *testing.T) {
	event := baseEvent(Bookmaker{Key: "draftkings", Markets: []Market{
		{Key: "h2h", Outcomes: []Outcome{{Name: "Boston Celtics", Price: -150}}},
	}})

	got := normalizeEvent(event, defaultMarkets, defaultPreferredBookmakers, time.Now())
	assert.Nil(t, got)
}

func TestNormalizeEventPartialMarkets(t *testing.T) {
	event := baseEvent(Bookmaker{Key: "smallbook", Markets: []Market{totalsMarket(224.5)}})

	got := normalizeEvent(event, defaultMarkets, defaultPreferredBookmakers, time.Now())
	require.NotNil(t, got)
	assert.Nil(t, got.SpreadHome)
	assert.Nil(t, got.SpreadAway)
	require.NotNil(t, got.TotalValue)
	assert.InDelta(t, 224.5, *got.TotalValue, 0.001)
	require.NotNil(t, got.TotalOverPrice)
	assert.InDelta(t, -108, *got.TotalOverPrice, 0.001)
	require.NotNil(t, got.TotalUnderPrice)
	assert.InDelta(t, -112, *got.TotalUnderPrice, 0.001)
	assert.Equal(t, "smallbook", got.Bookmaker)
}

func TestNormalizeEventPrefersConfiguredBookmakers(t *testing.T) {
	first := Bookmaker{Key: "smallbook", Markets: []Market{
		spreadsMarket("Boston Celtics", -3.5), totalsMarket(220),
	}}
	preferred := Bookmaker{Key: "fanduel", Markets: []Market{
		spreadsMarket("Boston Celtics", -4.5), totalsMarket(221.5),
	}}
	event := baseEvent(first, preferred)

	got := normalizeEvent(event, defaultMarkets, defaultPreferredBookmakers, time.Now())
	require.NotNil(t, got)
	assert.Equal(t, "fanduel", got.Bookmaker)
	require.NotNil(t, got.SpreadHome)
	assert.InDelta(t, -4.5, *got.SpreadHome, 0.001)
}

func TestNormalizeEventFallsBackToFirstComplete(t *testing.T) {
	partial := Bookmaker{Key: "partialbook", Markets: []Market{totalsMarket(220)}}
	complete := Bookmaker{Key: "completebook", Markets: []Market{
		spreadsMarket("Boston Celtics", -6), totalsMarket(219.5),
	}}
	event := baseEvent(partial, complete)

	got := normalizeEvent(event, defaultMarkets, defaultPreferredBookmakers, time.Now())
	require.NotNil(t, got)
	assert.Equal(t, "completebook", got.Bookmaker)
}

func TestNormalizeEventSpreadSides(t *testing.T) {
	event := baseEvent(Bookmaker{Key: "draftkings", Markets: []Market{
		{Key: marketSpreads, Outcomes: []Outcome{
			{Name: "Miami Heat", Price: -110, Point: floatPtr(7.5)},
			{Name: "Boston Celtics", Price: -110, Point: floatPtr(-7.5)},
		}},
	}})

	got := normalizeEvent(event, []string{marketSpreads}, defaultPreferredBookmakers, time.Now())
	require.NotNil(t, got)
	require.NotNil(t, got.SpreadHome)
	require.NotNil(t, got.SpreadAway)
	assert.InDelta(t, -7.5, *got.SpreadHome, 0.001)
	assert.InDelta(t, 7.5, *got.SpreadAway, 0.001)
	assert.Nil(t, got.TotalValue)
}

func TestMapScoreEventParsesNumericScores(t *testing.T) {
	event := ScoreEvent{
		ID:        "evt-2",
		SportKey:  "americanfootball_nfl",
		HomeTeam:  "Buffalo Bills",
		AwayTeam:  "New York Jets",
		Completed: false,
		Scores: []TeamScore{
			{Name: "Buffalo Bills", Score: "24"},
			{Name: "New York Jets", Score: "17"},
		},
	}

	got := mapScoreEvent(event)
	require.True(t, got.HasScores())
	assert.Equal(t, 24, *got.HomeScore)
	assert.Equal(t, 17, *got.AwayScore)
}

func TestMapScoreEventSkipsUnparseableScores(t *testing.T) {
	event := ScoreEvent{
		ID:       "evt-3",
		SportKey: "basketball_nba",
		HomeTeam: "Boston Celtics",
		AwayTeam: "Miami Heat",
		Scores: []TeamScore{
			{Name: "Boston Celtics", Score: ""},
			{Name: "Miami Heat", Score: "n/a"},
		},
	}

	got := mapScoreEvent(event)
	assert.False(t, got.HasScores())
	assert.Nil(t, got.HomeScore)
	assert.Nil(t, got.AwayScore)

	got = mapScoreEvent(ScoreEvent{ID: "evt-4", SportKey: "basketball_nba", HomeTeam: "A", AwayTeam: "B"})
	assert.False(t, got.HasScores())
}
