package validator

import (
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidDate parses a "YYYY-MM-DD" calendar date. No timezone is applied.
func IsValidDate(dateStr string) (civil.Date, bool) {
	date, err := civil.ParseDate(dateStr)
	return date, err == nil
}

// IsValidClock parses a zero-padded "HH:MM" time of day.
func IsValidClock(clockStr string) (worktime.Clock, bool) {
	c, err := worktime.ParseClock(clockStr)
	return c, err == nil
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func IsValidYear(year int) bool {
	return year >= 1970 && year <= 9999
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// DateRange validates an optional inclusive start/end pair.
func DateRange(startField, startStr, endField, endStr string) (start, end civil.Date, errs ValidationErrors) {
	var startOK, endOK bool
	start, startOK = IsValidDate(startStr)
	if !startOK {
		errs = append(errs, ValidationError{
			Field:   startField,
			Message: startField + " must be in YYYY-MM-DD format",
		})
	}

	end, endOK = IsValidDate(endStr)
	if !endOK {
		errs = append(errs, ValidationError{
			Field:   endField,
			Message: endField + " must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, ValidationError{
			Field:   endField,
			Message: endField + " must not be before " + startField,
		})
	}

	return start, end, errs
}
