package attendance

import "context"

type AttendanceService interface {
	// Aggregate computes base metrics for every active employee without
	// touching the store.
	Aggregate(ctx context.Context, month, year int) (map[string]Metrics, error)

	// Recompute aggregates and upserts: new rows get final values seeded
	// from base, existing rows get base columns refreshed only.
	Recompute(ctx context.Context, month, year int) error

	// UpsertFinal writes the manually approved values for one employee.
	UpsertFinal(ctx context.Context, req UpsertFinalRequest) error

	ListSummaries(ctx context.Context, month, year int) ([]SummaryResponse, error)
}
