package calendar

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Thursday, Weekday(date("2024-05-02")))
	assert.Equal(t, "Qui", WeekdayAbbrev(Weekday(date("2024-05-02"))))
	assert.Equal(t, "Sáb", WeekdayAbbrev(time.Saturday))
	assert.Equal(t, "Domingo", WeekdayName(time.Sunday))
}

func TestWeek(t *testing.T) {
	cases := []struct{ in, start, end string }{
		{"2024-05-02", "2024-04-28", "2024-05-04"},
		{"2024-04-28", "2024-04-28", "2024-05-04"},
		{"2024-05-04", "2024-04-28", "2024-05-04"},
		{"2024-12-31", "2024-12-29", "2025-01-04"},
	}
	for _, c := range cases {
		start, end := Week(date(c.in))
		assert.Equal(t, c.start, start.String(), c.in)
		assert.Equal(t, c.end, end.String(), c.in)
	}
}

func TestMonth(t *testing.T) {
	cases := []struct {
		year       int
		month      time.Month
		start, end string
	}{
		{2024, time.February, "2024-02-01", "2024-02-29"},
		{2023, time.February, "2023-02-01", "2023-02-28"},
		{2024, time.December, "2024-12-01", "2024-12-31"},
		{2024, time.April, "2024-04-01", "2024-04-30"},
	}
	for _, c := range cases {
		start, end := Month(c.year, c.month)
		assert.Equal(t, c.start, start.String())
		assert.Equal(t, c.end, end.String())
	}
}

func TestDays(t *testing.T) {
	days := Days(date("2024-02-27"), date("2024-03-01"))
	assert.Len(t, days, 4)
	assert.Equal(t, "2024-02-29", days[2].String())

	assert.Empty(t, Days(date("2024-03-01"), date("2024-02-27")))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Maio", MonthName(time.May))
	assert.Equal(t, "Março", MonthName(time.March))
	assert.Equal(t, "", MonthName(13))
	assert.Equal(t, "02/05/2024", FormatBR(date("2024-05-02")))
}
