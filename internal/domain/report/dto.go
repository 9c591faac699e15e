package report

import (
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

// Report periods.
const (
	PeriodDay    = "day"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodYear   = "year"
	PeriodCustom = "custom"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ========================================
// PERIOD REPORT
// ========================================

type PeriodReportRequest struct {
	Period string `json:"period"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
}

func (r *PeriodReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Period, []string{PeriodMonth, PeriodYear}) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be month or year",
		})
	}

	if r.Period == PeriodMonth && !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a valid year",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// HISTORY
// ========================================

type HistoryRequest struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *HistoryRequest) Validate() error {
	if r.Period == "" {
		r.Period = PeriodDay
	}

	if !validator.IsInSlice(r.Period, []string{PeriodDay, PeriodWeek, PeriodMonth, PeriodCustom}) {
		return validator.ValidationErrors{{
			Field:   "period",
			Message: "period must be one of day, week, month, custom",
		}}
	}

	if r.Period != PeriodCustom {
		return nil
	}

	if validator.IsEmpty(r.StartDate) || validator.IsEmpty(r.EndDate) {
		return ErrMissingCustomRange
	}
	if _, _, errs := validator.DateRange("start_date", r.StartDate, "end_date", r.EndDate); len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// MONTHLY TIMESHEET
// ========================================

type MonthlyReportRequest struct {
	// Month and Year default to the current month when zero.
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != 0 && !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year != 0 && !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a valid year",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportRequest struct {
	MonthlyReportRequest
	Format string `json:"format"`
}

func (r *ExportRequest) Validate() error {
	if err := r.MonthlyReportRequest.Validate(); err != nil {
		return err
	}
	if r.Format == "" {
		r.Format = FormatPDF
	}
	if !validator.IsInSlice(r.Format, []string{FormatPDF, FormatXLSX}) {
		return ErrUnsupportedFormat
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type DayRow struct {
	Date        string            `json:"date"`
	DateLabel   string            `json:"date_label"`
	Weekday     string            `json:"weekday"`
	CheckIn     string            `json:"check_in"`
	BreakStart  string            `json:"break_start"`
	BreakEnd    string            `json:"break_end"`
	CheckOut    string            `json:"check_out"`
	Total       string            `json:"total"`
	Status      string            `json:"status"`
	IsHoliday   bool              `json:"is_holiday"`
	HolidayName string            `json:"holiday_name,omitempty"`
	DayOff      bool              `json:"day_off,omitempty"`
	Observation string            `json:"observation,omitempty"`
	Tone        Tone              `json:"tone"`
	Photos      map[string]string `json:"photos,omitempty"`
}

type EmployeeInfo struct {
	Name       string `json:"name,omitempty"`
	Company    string `json:"company,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

type PeriodReportResponse struct {
	Title        string        `json:"title"`
	Period       string        `json:"period"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Employee     *EmployeeInfo `json:"employee,omitempty"`
	Days         []DayRow      `json:"days"`
	TotalHours   string        `json:"total_hours"`
	WorkedDays   int           `json:"worked_days"`
	AverageHours string        `json:"average_hours"`
	Message      string        `json:"message,omitempty"`
}

type TimesheetHeader struct {
	Employee      string `json:"employee"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	Company       string `json:"company"`
	AdmissionDate string `json:"admission_date"`
	WeeklyHours   string `json:"weekly_hours"`
	MonthlyHours  string `json:"monthly_hours"`
	StandardShift string `json:"standard_shift"`
	Month         string `json:"month"`
}

type MonthlySummary struct {
	TotalHours   string `json:"total_hours"`
	WorkedDays   int    `json:"worked_days"`
	AverageHours string `json:"average_hours"`
}

type MonthlyReportResponse struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Header   TimesheetHeader `json:"header"`
	Days     []DayRow        `json:"days"`
	Summary  MonthlySummary  `json:"summary"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
