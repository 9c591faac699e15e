package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("no holiday on this date")
	ErrEmptySource     = errors.New("holiday source returned no entries")
)
