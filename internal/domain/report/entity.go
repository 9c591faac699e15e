package report

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
)

// NoRecordsMessage is shown for a period without punches.
const NoRecordsMessage = "Nenhum registro encontrado para o período selecionado."

// DayAggregate is the derived view of one calendar day. It is never stored.
type DayAggregate struct {
	Date        civil.Date
	Weekday     time.Weekday
	Punches     map[attendance.PunchType]attendance.Record
	HolidayName string
	IsHoliday   bool
	// WorkedMinutes is nil unless Status is DayComplete.
	WorkedMinutes *int
	Status        attendance.DayStatus
	DayOff        bool
}

// Punch returns the time of a punch as HH:MM, or fallback when missing.
func (d DayAggregate) Punch(t attendance.PunchType, fallback string) string {
	if r, ok := d.Punches[t]; ok {
		return r.Time.String()
	}
	return fallback
}

type PeriodReport struct {
	Start          civil.Date
	End            civil.Date
	Days           []DayAggregate
	TotalMinutes   int
	WorkedDays     int
	AverageMinutes int
}

func (r PeriodReport) IsEmpty() bool {
	return len(r.Days) == 0
}

// MonthlyReport holds one entry per calendar day of the month, including
// days without punches.
type MonthlyReport struct {
	PeriodReport
	Year  int
	Month time.Month
}
