package attendance

import (
	"errors"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
)

type DayStatus string

const (
	DayComplete     DayStatus = "complete"
	DayIncomplete   DayStatus = "incomplete"
	DayInvalidOrder DayStatus = "invalid_order"
	DayNoPunches    DayStatus = "no_punches"
)

// Summarize returns the worked minutes of a day and its status. Minutes are
// nil unless all four punches exist in chronological order.
func Summarize(punches map[PunchType]Record) (*int, DayStatus) {
	if len(punches) == 0 {
		return nil, DayNoPunches
	}

	clocks := make([]*worktime.Clock, len(PunchTypes))
	for i, t := range PunchTypes {
		if r, ok := punches[t]; ok {
			c := r.Time
			clocks[i] = &c
		}
	}

	minutes, err := worktime.WorkedDuration(clocks[0], clocks[1], clocks[2], clocks[3])
	switch {
	case errors.Is(err, worktime.ErrInvalidPunchOrder):
		return nil, DayInvalidOrder
	case minutes == nil:
		return nil, DayIncomplete
	}
	return minutes, DayComplete
}
