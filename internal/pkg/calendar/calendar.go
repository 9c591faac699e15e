// Package calendar works with naive calendar dates and their Portuguese
// display names. Dates never pass through an instant, so no timezone can
// move them to another day.
package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

var weekdayAbbrev = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var weekdayNames = [...]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

func WeekdayAbbrev(wd time.Weekday) string {
	return weekdayAbbrev[wd]
}

func WeekdayName(wd time.Weekday) string {
	return weekdayNames[wd]
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Today is the current date in loc.
func Today(loc *time.Location) civil.Date {
	return civil.DateOf(time.Now().In(loc))
}

// Week returns the Sunday to Saturday week holding d.
func Week(d civil.Date) (civil.Date, civil.Date) {
	start := d.AddDays(-int(Weekday(d)))
	return start, start.AddDays(6)
}

// Month returns the first and last day of the month.
func Month(year int, month time.Month) (civil.Date, civil.Date) {
	first := civil.Date{Year: year, Month: month, Day: 1}
	last := civil.Date{Year: year, Month: month + 1, Day: 1}
	if month == time.December {
		last = civil.Date{Year: year + 1, Month: time.January, Day: 1}
	}
	return first, last.AddDays(-1)
}

// Year returns January 1st and December 31st.
func Year(year int) (civil.Date, civil.Date) {
	return civil.Date{Year: year, Month: time.January, Day: 1}, civil.Date{Year: year, Month: time.December, Day: 31}
}

// Days lists every date from start to end inclusive.
func Days(start, end civil.Date) []civil.Date {
	if end.Before(start) {
		return nil
	}
	days := make([]civil.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// FormatBR renders d as DD/MM/YYYY.
func FormatBR(d civil.Date) string {
	return d.In(time.UTC).Format("02/01/2006")
}
