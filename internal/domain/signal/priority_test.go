package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollupPriority(t *testing.T) {
	tests := []struct {
		name string
		in   *PriorityInput
		want Priority
	}{
		{"no snapshot", nil, PriorityMedium},
		{"high tension", &PriorityInput{TensionScore: 70}, PriorityHigh},
		{"close finish alone", &PriorityInput{TensionScore: 10, CloseFinish: true}, PriorityHigh},
		{"swingy game", &PriorityInput{TensionScore: 40, MomentumShifts: 3, LeadChanges: 2}, PriorityHigh},
		{"momentum without lead changes", &PriorityInput{TensionScore: 40, MomentumShifts: 5, LeadChanges: 1}, PriorityMedium},
		{"flat low-tension game", &PriorityInput{TensionScore: 30, MomentumShifts: 1, LeadChanges: 1}, PriorityLow},
		{"low tension but active", &PriorityInput{TensionScore: 20, MomentumShifts: 2}, PriorityMedium},
		{"mid tension", &PriorityInput{TensionScore: 50}, PriorityMedium},
		{"tension boundary 69", &PriorityInput{TensionScore: 69}, PriorityMedium},
		{"tension boundary 31", &PriorityInput{TensionScore: 31}, PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RollupPriority(tt.in))
		})
	}
}

func TestRollupPriorityReadsOnlyInputFields(t *testing.T) {
	// Same field values must always produce the same priority.
	in := &PriorityInput{TensionScore: 55, MomentumShifts: 2, LeadChanges: 1}
	first := RollupPriority(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, RollupPriority(in))
	}
}
