package game

import (
	"context"
	"time"
)

// Repository exposes game reads and the writes the ingestion cycle needs.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Game, bool, error)
	// FindByPairWithinWindow returns the game for exactly this ordered
	// (home, away) pair whose scheduled time falls within the window around
	// commence.
	FindByPairWithinWindow(ctx context.Context, homeTeamID, awayTeamID int64, commence time.Time, window time.Duration) (Game, bool, error)
	// FindLatestByPair matches on team IDs alone with no time window. Lax;
	// serves the legacy matcher only.
	FindLatestByPair(ctx context.Context, homeTeamID, awayTeamID int64) (Game, bool, error)
	Insert(ctx context.Context, item Game) (Game, error)
	// UpdateStatus writes status and, when completedAt is non-nil, stamps the
	// completion time. Call only when the computed status differs.
	UpdateStatus(ctx context.Context, id int64, status string, completedAt *time.Time) error
	ListBySport(ctx context.Context, sportKey string, limit int) ([]Game, error)
	// ActivityCounts drives the fetch planner; see ActivityCounts.
	ActivityCounts(ctx context.Context, now time.Time) (ActivityCounts, error)
}
