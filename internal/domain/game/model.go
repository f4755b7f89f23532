package game

import (
	"strings"
	"time"
)

const (
	StatusUpcoming  = "upcoming"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// DedupeWindow is the sole de-duplication heuristic for game identity: at
// most one game per ordered (home, away) pair is resolved within this window
// around a commence time. Holds for the supported leagues, which never play
// the same pairing twice in a day.
const DedupeWindow = 12 * time.Hour

// Game is one scheduled meeting between two teams.
type Game struct {
	ID            int64
	SportKey      string
	HomeTeamID    int64
	AwayTeamID    int64
	Status        string
	ScheduledTime time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeStatus derives the status a score event implies. Transitions are
// monotonic upcoming -> live -> completed in normal operation; a provider
// regression is undefined behavior and is written as-is.
func ComputeStatus(providerCompleted bool, commence, now time.Time) string {
	if providerCompleted {
		return StatusCompleted
	}
	if !commence.After(now) {
		return StatusLive
	}
	return StatusUpcoming
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	switch status {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return status
	default:
		return StatusUpcoming
	}
}

// ActivityCounts summarizes DB-observed game activity for the fetch planner.
type ActivityCounts struct {
	// Live is the number of games currently flagged live.
	Live int
	// ShouldBeLive counts upcoming games whose scheduled time is in the
	// recent past: likely live but not yet flagged by a score event.
	ShouldBeLive int
	// StartingSoon counts upcoming games starting within the next hour.
	StartingSoon int
}

// Active reports whether any game warrants spending score-fetch quota.
func (c ActivityCounts) Active() bool {
	return c.Live > 0 || c.StartingSoon > 0
}
