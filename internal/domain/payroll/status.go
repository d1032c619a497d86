package payroll

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft               PeriodStatus = "draft"
	PeriodStatusProcessing          PeriodStatus = "processing"
	PeriodStatusCompleted           PeriodStatus = "completed"
	PeriodStatusCompletedWithErrors PeriodStatus = "completed_with_errors"
	PeriodStatusApproved            PeriodStatus = "approved"
	PeriodStatusPaid                PeriodStatus = "paid"
	PeriodStatusCancelled           PeriodStatus = "cancelled"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusInProgress          RunStatus = "in_progress"
	RunStatusCompleted           RunStatus = "completed"
	RunStatusCompletedWithErrors RunStatus = "completed_with_errors"
	RunStatusFailed              RunStatus = "failed"
	RunStatusCancelled           RunStatus = "cancelled"
)

// DetailStatus enum
type DetailStatus string

const (
	DetailStatusDraft      DetailStatus = "draft"
	DetailStatusCalculated DetailStatus = "calculated"
	DetailStatusApproved   DetailStatus = "approved"
	DetailStatusPaid       DetailStatus = "paid"
	DetailStatusCancelled  DetailStatus = "cancelled"
)

// Transition tables. Every status mutation goes through CanTransitionTo
// so illegal moves are rejected in one place rather than by scattered
// string comparisons.

var periodTransitions = map[PeriodStatus][]PeriodStatus{
	PeriodStatusDraft:               {PeriodStatusProcessing, PeriodStatusCancelled},
	PeriodStatusProcessing:          {PeriodStatusCompleted, PeriodStatusCompletedWithErrors, PeriodStatusCancelled},
	PeriodStatusCompleted:           {PeriodStatusApproved},
	PeriodStatusCompletedWithErrors: {PeriodStatusProcessing, PeriodStatusApproved},
	PeriodStatusApproved:            {PeriodStatusPaid},
	PeriodStatusPaid:                {},
	PeriodStatusCancelled:           {},
}

var runTransitions = map[RunStatus][]RunStatus{
	RunStatusInProgress:          {RunStatusCompleted, RunStatusCompletedWithErrors, RunStatusFailed, RunStatusCancelled},
	RunStatusCompleted:           {},
	RunStatusCompletedWithErrors: {},
	RunStatusFailed:              {},
	RunStatusCancelled:           {},
}

var detailTransitions = map[DetailStatus][]DetailStatus{
	DetailStatusDraft:      {DetailStatusCalculated, DetailStatusCancelled},
	DetailStatusCalculated: {DetailStatusApproved, DetailStatusCancelled},
	DetailStatusApproved:   {DetailStatusPaid},
	DetailStatusPaid:       {},
	DetailStatusCancelled:  {},
}

func (s PeriodStatus) CanTransitionTo(next PeriodStatus) bool {
	for _, allowed := range periodTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	for _, allowed := range runTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s DetailStatus) CanTransitionTo(next DetailStatus) bool {
	for _, allowed := range detailTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsProcessable reports whether a run may start against a period in this
// status. Draft starts a fresh run; processing and completed_with_errors
// admit resumption of a partial run.
func (s PeriodStatus) IsProcessable() bool {
	switch s {
	case PeriodStatusDraft, PeriodStatusProcessing, PeriodStatusCompletedWithErrors:
		return true
	}
	return false
}

// IsCompleted reports whether processing has finished for the period.
func (s PeriodStatus) IsCompleted() bool {
	return s == PeriodStatusCompleted || s == PeriodStatusCompletedWithErrors
}
