package report

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(d string, times ...string) []attendance.Record {
	var records []attendance.Record
	for i, t := range times {
		if t == "" {
			continue
		}
		records = append(records, attendance.Record{
			Date: date(d),
			Type: attendance.PunchTypes[i],
			Time: worktime.MustParseClock(t),
		})
	}
	return records
}

func holidays(entries map[string]string) holiday.Lookup {
	return holiday.LookupFunc(func(d civil.Date) (string, bool) {
		name, ok := entries[d.String()]
		return name, ok
	})
}

type thursdayOff struct{}

func (thursdayOff) IsDayOff(wd time.Weekday) bool { return wd == time.Thursday }

func TestBuildPeriodReport_Empty(t *testing.T) {
	r := BuildPeriodReport(nil, date("2024-05-01"), date("2024-05-31"), nil)

	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.TotalMinutes)
	assert.Equal(t, 0, r.WorkedDays)
	assert.Equal(t, 0, r.AverageMinutes)
}

func TestBuildPeriodReport(t *testing.T) {
	var records []attendance.Record
	records = append(records, day("2024-05-03", "08:00", "12:00", "13:30", "18:00")...) // 08:30
	records = append(records, day("2024-05-01", "08:00", "12:00", "13:00", "17:00")...) // 08:00, holiday
	records = append(records, day("2024-05-02", "08:00", "12:00", "", "")...)           // incomplete
	records = append(records, day("2024-05-06", "13:00", "12:00", "13:00", "17:00")...) // out of order
	records = append(records, day("2024-06-01", "08:00", "12:00", "13:00", "17:00")...) // outside

	r := BuildPeriodReport(records, date("2024-05-01"), date("2024-05-31"), holidays(map[string]string{
		"2024-05-01": "Dia do Trabalho",
	}))

	require.Len(t, r.Days, 4)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-06"}, []string{
		r.Days[0].Date.String(), r.Days[1].Date.String(), r.Days[2].Date.String(), r.Days[3].Date.String(),
	})

	assert.True(t, r.Days[0].IsHoliday)
	assert.Equal(t, "Dia do Trabalho", r.Days[0].HolidayName)
	assert.Equal(t, time.Wednesday, r.Days[0].Weekday)

	assert.Equal(t, attendance.DayIncomplete, r.Days[1].Status)
	assert.Nil(t, r.Days[1].WorkedMinutes)
	assert.Equal(t, "12:00", r.Days[1].Punch(attendance.BreakStart, "-"))
	assert.Equal(t, "-", r.Days[1].Punch(attendance.CheckOut, "-"))

	assert.Equal(t, attendance.DayInvalidOrder, r.Days[3].Status)
	assert.Nil(t, r.Days[3].WorkedMinutes)

	assert.Equal(t, "16:30", worktime.FormatMinutes(r.TotalMinutes))
	assert.Equal(t, 2, r.WorkedDays)
	assert.Equal(t, "08:15", worktime.FormatMinutes(r.AverageMinutes))
}

func TestBuildPeriodReport_HolidayOnWeekend(t *testing.T) {
	// 2024-09-07 is a Saturday; holidays are flagged on every weekday.
	records := day("2024-09-07", "08:00", "", "", "")
	r := BuildPeriodReport(records, date("2024-09-01"), date("2024-09-30"), holidays(map[string]string{
		"2024-09-07": "Independência do Brasil",
	}))

	require.Len(t, r.Days, 1)
	assert.True(t, r.Days[0].IsHoliday)
	assert.Equal(t, time.Saturday, r.Days[0].Weekday)
}

func TestBuildMonthlyReport(t *testing.T) {
	var records []attendance.Record
	records = append(records, day("2024-02-05", "08:00", "12:00", "13:00", "17:00")...)
	records = append(records, day("2024-02-06", "08:00", "12:00", "13:00", "16:00")...)
	records = append(records, day("2024-03-01", "08:00", "12:00", "13:00", "17:00")...)

	r := BuildMonthlyReport(records, 2024, time.February, nil, thursdayOff{})

	require.Len(t, r.Days, 29)
	assert.Equal(t, "2024-02-01", r.Days[0].Date.String())
	assert.Equal(t, "2024-02-29", r.Days[28].Date.String())

	assert.True(t, r.Days[0].DayOff, "2024-02-01 is a Thursday")
	assert.False(t, r.Days[1].DayOff)
	assert.Equal(t, attendance.DayNoPunches, r.Days[1].Status)
	assert.Equal(t, "00:00", r.Days[1].Punch(attendance.CheckIn, "00:00"))

	assert.Equal(t, 2, r.WorkedDays)
	assert.Equal(t, "15:00", worktime.FormatMinutes(r.TotalMinutes))
	assert.Equal(t, "07:30", worktime.FormatMinutes(r.AverageMinutes))
}

func TestBuildMonthlyReport_NoPunches(t *testing.T) {
	r := BuildMonthlyReport(nil, 2023, time.April, nil, nil)

	assert.Len(t, r.Days, 30)
	assert.Equal(t, 0, r.WorkedDays)
	assert.Equal(t, 0, r.AverageMinutes)
	for _, d := range r.Days {
		assert.False(t, d.DayOff)
	}
}
