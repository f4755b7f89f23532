package signal

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PriorityInput carries the snapshot fields the rollup reads. A nil input
// means no snapshot has ever been captured for the game.
type PriorityInput struct {
	TensionScore   int
	MomentumShifts int
	LeadChanges    int
	CloseFinish    bool
}

// RollupPriority converts the current snapshot state into a watch priority.
// Rules are evaluated in order and the first match wins; an unobserved game
// defaults to medium rather than low so it is not buried before any signal
// exists.
func RollupPriority(in *PriorityInput) Priority {
	if in == nil {
		return PriorityMedium
	}
	if in.TensionScore >= 70 || in.CloseFinish || (in.MomentumShifts >= 3 && in.LeadChanges >= 2) {
		return PriorityHigh
	}
	if in.TensionScore <= 30 && in.MomentumShifts <= 1 && in.LeadChanges <= 1 {
		return PriorityLow
	}
	return PriorityMedium
}
