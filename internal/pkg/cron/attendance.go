package cron

import (
	"context"
	"time"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
)

// AttendanceJobs refreshes attendance summaries in the background so
// base fields keep tracking late raw-data edits. Recompute never touches
// the manually approved final columns, so running it on a schedule is
// safe.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_previous_month_attendance", 24*time.Hour, j.RecomputePreviousMonth)
}

// RecomputePreviousMonth re-aggregates the previous calendar month.
func (j *AttendanceJobs) RecomputePreviousMonth(ctx context.Context) error {
	prev := time.Now().AddDate(0, -1, 0)
	return j.attendanceSvc.Recompute(ctx, int(prev.Month()), prev.Year())
}
