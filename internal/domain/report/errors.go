package report

import "errors"

var (
	ErrInvalidPeriod      = errors.New("invalid report period")
	ErrUnsupportedFormat  = errors.New("export format must be pdf or xlsx")
	ErrRenderFailed       = errors.New("failed to render report")
	ErrMissingCustomRange = errors.New("custom period requires start_date and end_date")
)
