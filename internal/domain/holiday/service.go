package holiday

import "context"

type HolidayService interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)

	// Get returns ErrHolidayNotFound when date is not a holiday.
	Get(ctx context.Context, date string) (HolidayResponse, error)

	// Refresh reloads the table from the source.
	Refresh(ctx context.Context) error
}
