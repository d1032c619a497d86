package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads the raw daily rows.
type AttendanceRepository interface {
	SumForPeriod(ctx context.Context, employeeID string, from, to time.Time) (Totals, error)
}

// SummaryRepository persists monthly summaries. Base and final columns
// are written by two distinct methods so a recompute can never clobber
// manually approved final values.
type SummaryRepository interface {
	// UpsertBase inserts a new summary (initializing final columns from
	// base) or, when the (year, month, employee) row exists, updates the
	// base columns only. Reports whether a row was inserted.
	UpsertBase(ctx context.Context, year, month int, employeeID string, base Metrics) (inserted bool, err error)

	// UpsertFinal writes the final columns, and also the base columns
	// when the caller supplies them. This is the only path that can
	// diverge final values from the latest base.
	UpsertFinal(ctx context.Context, year, month int, employeeID string, final Metrics, base *Metrics) error

	GetByEmployeePeriod(ctx context.Context, year, month int, employeeID string) (Summary, error)
	ListByPeriod(ctx context.Context, year, month int) ([]Summary, error)
}
