package attendance

import (
	"context"
)

type AttendanceService interface {
	// RecordPunch stores a punch, replacing any earlier punch of the same
	// type on the same date.
	RecordPunch(ctx context.Context, req PunchRequest) (RecordResponse, error)

	// Today returns the punches and worked hours of the current date.
	Today(ctx context.Context) (DailySummaryResponse, error)

	Day(ctx context.Context, date string) (DailySummaryResponse, error)

	List(ctx context.Context, req RangeRequest) ([]RecordResponse, error)
}
