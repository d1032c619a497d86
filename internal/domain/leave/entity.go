package leave

import (
	"strings"
	"time"
)

// LeaveType - Leave policy row deciding whether days of this type are paid.
type LeaveType struct {
	ID        string
	Name      string
	IsPaid    bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveStatus enum
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRecord - One approved leave span for an employee.
type LeaveRecord struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Status      LeaveStatus
	CreatedAt   time.Time

	// Joined fields
	LeaveTypeName string
}

// DaysWithin counts the leave days that fall inside [from, to].
func (r LeaveRecord) DaysWithin(from, to time.Time) int {
	start := r.StartDate
	if start.Before(from) {
		start = from
	}
	end := r.EndDate
	if end.After(to) {
		end = to
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// IsUnpaidByName is the fallback paid/unpaid split when no leave-type
// policy row is available: a type literally named "unpaid" is unpaid,
// everything else counts as paid.
func IsUnpaidByName(typeName string) bool {
	return strings.EqualFold(strings.TrimSpace(typeName), "unpaid")
}
