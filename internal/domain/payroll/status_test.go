package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PeriodStatus
		to      PeriodStatus
		allowed bool
	}{
		{PeriodStatusDraft, PeriodStatusProcessing, true},
		{PeriodStatusDraft, PeriodStatusCancelled, true},
		{PeriodStatusDraft, PeriodStatusApproved, false},
		{PeriodStatusDraft, PeriodStatusCompleted, false},
		{PeriodStatusProcessing, PeriodStatusCompleted, true},
		{PeriodStatusProcessing, PeriodStatusCompletedWithErrors, true},
		{PeriodStatusProcessing, PeriodStatusPaid, false},
		{PeriodStatusCompleted, PeriodStatusApproved, true},
		{PeriodStatusCompleted, PeriodStatusProcessing, false},
		{PeriodStatusCompletedWithErrors, PeriodStatusProcessing, true},
		{PeriodStatusCompletedWithErrors, PeriodStatusApproved, true},
		{PeriodStatusApproved, PeriodStatusPaid, true},
		{PeriodStatusApproved, PeriodStatusDraft, false},
		{PeriodStatusPaid, PeriodStatusDraft, false},
		{PeriodStatusCancelled, PeriodStatusProcessing, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestRunStatusTerminal(t *testing.T) {
	for _, next := range []RunStatus{
		RunStatusCompleted, RunStatusCompletedWithErrors, RunStatusFailed, RunStatusCancelled,
	} {
		assert.True(t, RunStatusInProgress.CanTransitionTo(next), "in_progress -> %s", next)
		// Terminal statuses admit nothing.
		assert.False(t, next.CanTransitionTo(RunStatusInProgress))
		assert.False(t, next.CanTransitionTo(RunStatusFailed))
	}
}

func TestDetailStatusTransitions(t *testing.T) {
	assert.True(t, DetailStatusDraft.CanTransitionTo(DetailStatusCalculated))
	assert.True(t, DetailStatusCalculated.CanTransitionTo(DetailStatusApproved))
	assert.True(t, DetailStatusApproved.CanTransitionTo(DetailStatusPaid))

	assert.False(t, DetailStatusDraft.CanTransitionTo(DetailStatusApproved))
	assert.False(t, DetailStatusCalculated.CanTransitionTo(DetailStatusPaid))
	assert.False(t, DetailStatusPaid.CanTransitionTo(DetailStatusDraft))
	assert.False(t, DetailStatusCancelled.CanTransitionTo(DetailStatusCalculated))
}

func TestPeriodStatusIsProcessable(t *testing.T) {
	assert.True(t, PeriodStatusDraft.IsProcessable())
	assert.True(t, PeriodStatusProcessing.IsProcessable())
	assert.True(t, PeriodStatusCompletedWithErrors.IsProcessable())

	assert.False(t, PeriodStatusCompleted.IsProcessable())
	assert.False(t, PeriodStatusApproved.IsProcessable())
	assert.False(t, PeriodStatusPaid.IsProcessable())
	assert.False(t, PeriodStatusCancelled.IsProcessable())
}

func TestPeriodStatusIsCompleted(t *testing.T) {
	assert.True(t, PeriodStatusCompleted.IsCompleted())
	assert.True(t, PeriodStatusCompletedWithErrors.IsCompleted())
	assert.False(t, PeriodStatusProcessing.IsCompleted())
	assert.False(t, PeriodStatusApproved.IsCompleted())
}
