package usecase

import (
	"context"
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
)

// OddsProvider is the outbound port for the upstream odds/scores feed.
//
// FetchQuotes returns normalized expectation records (GameID unset, linked
// later by the reconciler) plus the raw event count; events without usable
// market data are dropped upstream and show up only in the count.
type OddsProvider interface {
	FetchQuotes(ctx context.Context, sportKey string) ([]expectation.Expectation, int, error)
	FetchScores(ctx context.Context, sportKey string) ([]ExternalScore, error)
}

// ExternalScore is a provider score event after shape validation. Home and
// away scores stay nil when the provider omits or mangles the score block;
// a nil score never produces a state snapshot but can still flip status.
type ExternalScore struct {
	EventID      string
	SportKey     string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Completed    bool
	HomeScore    *int
	AwayScore    *int
	LastUpdate   *time.Time
}

// HasScores reports whether both sides carry parseable numeric scores.
func (s ExternalScore) HasScores() bool {
	return s.HomeScore != nil && s.AwayScore != nil
}
