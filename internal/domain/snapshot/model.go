package snapshot

import (
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/signal"
)

// Snapshot is one captured score/derived-signal state for a game. Rows are
// append-only; at steady state exactly one snapshot per game is final, and
// the first final row sticks.
type Snapshot struct {
	ID             int64
	GameID         int64
	CapturedAt     time.Time
	TensionScore   int
	MomentumShifts int
	LeadChanges    int
	CloseFinish    bool
	IsFinal        bool
	Stage          signal.Stage
	Competitive    bool
	ActivityLevel  signal.ActivityLevel
	HomeScore      *int
	AwayScore      *int
}

// ScoreDiff returns home minus away, or 0 while scores are unknown.
func (s Snapshot) ScoreDiff() int {
	if s.HomeScore == nil || s.AwayScore == nil {
		return 0
	}
	return *s.HomeScore - *s.AwayScore
}

// PriorityInput projects the four fields the priority rollup may read.
func (s Snapshot) PriorityInput() *signal.PriorityInput {
	return &signal.PriorityInput{
		TensionScore:   s.TensionScore,
		MomentumShifts: s.MomentumShifts,
		LeadChanges:    s.LeadChanges,
		CloseFinish:    s.CloseFinish,
	}
}

// SelectCurrent picks the snapshot the presentation layer should show: the
// final row when one exists, else the most recently captured. The final flag
// wins over recency. Returns nil for an empty history.
func SelectCurrent(items []Snapshot) *Snapshot {
	var current *Snapshot
	for i := range items {
		item := &items[i]
		if item.IsFinal {
			// First final written sticks, so prefer the earliest final row.
			if current == nil || !current.IsFinal || item.CapturedAt.Before(current.CapturedAt) {
				current = item
			}
			continue
		}
		if current == nil || (!current.IsFinal && item.CapturedAt.After(current.CapturedAt)) {
			current = item
		}
	}
	return current
}
