package report

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
)

// DayOffRule tells which weekdays are configured days off.
type DayOffRule interface {
	IsDayOff(wd time.Weekday) bool
}

// BuildPeriodReport aggregates the records dated within [start, end], one
// entry per day that has at least one punch, in ascending order.
func BuildPeriodReport(records []attendance.Record, start, end civil.Date, holidays holiday.Lookup) PeriodReport {
	byDay := groupByDay(records, start, end)

	dates := make([]civil.Date, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	report := PeriodReport{Start: start, End: end}
	for _, d := range dates {
		report.Days = append(report.Days, aggregateDay(d, byDay[d], holidays))
	}

	report.total()
	return report
}

// BuildMonthlyReport aggregates a whole month, synthesizing entries for
// days without punches and flagging configured days off.
func BuildMonthlyReport(records []attendance.Record, year int, month time.Month, holidays holiday.Lookup, dayOff DayOffRule) MonthlyReport {
	start, end := calendar.Month(year, month)
	byDay := groupByDay(records, start, end)

	report := MonthlyReport{
		PeriodReport: PeriodReport{Start: start, End: end},
		Year:         year,
		Month:        month,
	}
	for _, d := range calendar.Days(start, end) {
		day := aggregateDay(d, byDay[d], holidays)
		if dayOff != nil {
			day.DayOff = dayOff.IsDayOff(day.Weekday)
		}
		report.Days = append(report.Days, day)
	}

	report.total()
	return report
}

func groupByDay(records []attendance.Record, start, end civil.Date) map[civil.Date]map[attendance.PunchType]attendance.Record {
	byDay := make(map[civil.Date]map[attendance.PunchType]attendance.Record)
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		if byDay[r.Date] == nil {
			byDay[r.Date] = make(map[attendance.PunchType]attendance.Record, len(attendance.PunchTypes))
		}
		byDay[r.Date][r.Type] = r
	}
	return byDay
}

func aggregateDay(d civil.Date, punches map[attendance.PunchType]attendance.Record, holidays holiday.Lookup) DayAggregate {
	if punches == nil {
		punches = map[attendance.PunchType]attendance.Record{}
	}

	day := DayAggregate{
		Date:    d,
		Weekday: calendar.Weekday(d),
		Punches: punches,
	}
	if holidays != nil {
		day.HolidayName, day.IsHoliday = holidays.Lookup(d)
	}
	day.WorkedMinutes, day.Status = attendance.Summarize(punches)
	return day
}

// total sums complete days only; incomplete and out of order days count
// neither towards the total nor the worked days.
func (r *PeriodReport) total() {
	r.TotalMinutes, r.WorkedDays = 0, 0
	for _, d := range r.Days {
		if d.WorkedMinutes == nil {
			continue
		}
		r.TotalMinutes += *d.WorkedMinutes
		r.WorkedDays++
	}
	r.AverageMinutes = worktime.Average(r.TotalMinutes, r.WorkedDays)
}
