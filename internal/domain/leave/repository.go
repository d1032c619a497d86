package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRecord, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
}
