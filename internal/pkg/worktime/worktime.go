// Package worktime holds the wall-clock arithmetic behind worked-hours
// reporting. All values are minutes since local midnight; no timezone or
// calendar date is involved.
package worktime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidClock      = errors.New("time must be in HH:MM format")
	ErrInvalidDuration   = errors.New("duration must be in HH:MM format")
	ErrInvalidPunchOrder = errors.New("punch times are out of order")
)

const minutesPerDay = 24 * 60

// Clock is a time of day with minute precision.
type Clock int

// ParseClock parses a zero-padded "HH:MM" value between 00:00 and 23:59.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, ErrInvalidClock
	}

	hours, _ := strconv.Atoi(s[:2])
	minutes, _ := strconv.Atoi(s[3:])
	if hours > 23 || minutes > 59 {
		return 0, ErrInvalidClock
	}

	return Clock(hours*60 + minutes), nil
}

// MustParseClock is ParseClock for literals known to be valid.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(fmt.Sprintf("worktime: %q: %v", s, err))
	}
	return c
}

func (c Clock) Minutes() int {
	return int(c)
}

func (c Clock) IsValid() bool {
	return c >= 0 && c < minutesPerDay
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, ErrInvalidClock
	}
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(data []byte) error {
	parsed, err := ParseClock(string(data))
	if err != nil {
		return fmt.Errorf("%q: %w", string(data), err)
	}
	*c = parsed
	return nil
}

// ComputeWorkedDuration returns the minutes worked across the two shift
// halves: (breakStart - checkIn) + (checkOut - breakEnd).
//
// Punches must be chronological; otherwise ErrInvalidPunchOrder is returned
// and the caller treats the day as having no computable total.
func ComputeWorkedDuration(checkIn, breakStart, breakEnd, checkOut Clock) (int, error) {
	if breakStart < checkIn || breakEnd < breakStart || checkOut < breakEnd {
		return 0, ErrInvalidPunchOrder
	}

	morning := breakStart.Minutes() - checkIn.Minutes()
	afternoon := checkOut.Minutes() - breakEnd.Minutes()

	return morning + afternoon, nil
}

// WorkedDuration is ComputeWorkedDuration for a day that may be missing
// punches. A nil result means the day is incomplete, which is not the same
// as zero minutes worked.
func WorkedDuration(checkIn, breakStart, breakEnd, checkOut *Clock) (*int, error) {
	if checkIn == nil || breakStart == nil || breakEnd == nil || checkOut == nil {
		return nil, nil
	}
	minutes, err := ComputeWorkedDuration(*checkIn, *breakStart, *breakEnd, *checkOut)
	if err != nil {
		return nil, err
	}
	return &minutes, nil
}

// FormatMinutes renders a duration as zero-padded HH:MM. Hours are not
// wrapped at 24 so period totals stay readable.
func FormatMinutes(total int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// ParseDuration is the inverse of FormatMinutes.
func ParseDuration(s string) (int, error) {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	hoursPart, minutesPart, ok := strings.Cut(s, ":")
	if !ok || len(hoursPart) < 2 || len(minutesPart) != 2 || !isDigits(hoursPart) || !isDigits(minutesPart) {
		return 0, ErrInvalidDuration
	}

	hours, err := strconv.Atoi(hoursPart)
	if err != nil {
		return 0, ErrInvalidDuration
	}
	minutes, _ := strconv.Atoi(minutesPart)
	if minutes > 59 {
		return 0, ErrInvalidDuration
	}

	total := hours*60 + minutes
	if negative {
		total = -total
	}
	return total, nil
}

// SumDurations adds HH:MM durations. An empty input yields "00:00".
func SumDurations(durations []string) (string, error) {
	total := 0
	for _, d := range durations {
		minutes, err := ParseDuration(d)
		if err != nil {
			return "", fmt.Errorf("%q: %w", d, err)
		}
		total += minutes
	}
	return FormatMinutes(total), nil
}

// Average returns the whole minutes per day, or 0 when there are no days.
func Average(totalMinutes, days int) int {
	if days <= 0 {
		return 0
	}
	return totalMinutes / days
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
