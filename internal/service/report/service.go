package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/config"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	missingPreview = "-"
	missingMonthly = "00:00"
	holidaySuffix  = " (Feriado)"
)

type ReportServiceImpl struct {
	attendanceRepo  attendance.Repository
	settingsService settings.SettingsService
	holidays        holiday.Lookup
	policy          *config.Policy
	renderers       map[string]report.Renderer
	loc             *time.Location
	now             func() time.Time
}

// GeneratePeriodReport implements report.ReportService.
func (s *ReportServiceImpl) GeneratePeriodReport(ctx context.Context, req report.PeriodReportRequest) (report.PeriodReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.PeriodReportResponse{}, err
	}

	var (
		start, end civil.Date
		title      string
	)
	switch req.Period {
	case report.PeriodMonth:
		start, end = calendar.Month(req.Year, time.Month(req.Month))
		title = fmt.Sprintf("Relatório Mensal - %s de %d", calendar.MonthName(time.Month(req.Month)), req.Year)
	case report.PeriodYear:
		start, end = calendar.Year(req.Year)
		title = fmt.Sprintf("Relatório Anual - %d", req.Year)
	default:
		return report.PeriodReportResponse{}, report.ErrInvalidPeriod
	}

	resp, err := s.preview(ctx, req.Period, start, end)
	if err != nil {
		return report.PeriodReportResponse{}, err
	}
	resp.Title = title

	profile, err := s.settingsService.Profile(ctx)
	if err != nil {
		return report.PeriodReportResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if profile.HasIdentity() {
		resp.Employee = &report.EmployeeInfo{
			Name:       profile.Name,
			Company:    profile.Company,
			Role:       profile.Role,
			Department: profile.Department,
		}
	}

	return resp, nil
}

// History implements report.ReportService.
func (s *ReportServiceImpl) History(ctx context.Context, req report.HistoryRequest) (report.PeriodReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.PeriodReportResponse{}, err
	}

	today := civil.DateOf(s.now().In(s.loc))

	var start, end civil.Date
	switch req.Period {
	case report.PeriodDay:
		start, end = today, today
	case report.PeriodWeek:
		start, end = calendar.Week(today)
	case report.PeriodMonth:
		start, end = calendar.Month(today.Year, today.Month)
	case report.PeriodCustom:
		start, _ = civil.ParseDate(req.StartDate)
		end, _ = civil.ParseDate(req.EndDate)
	default:
		return report.PeriodReportResponse{}, report.ErrInvalidPeriod
	}

	resp, err := s.preview(ctx, req.Period, start, end)
	if err != nil {
		return report.PeriodReportResponse{}, err
	}
	resp.Title = "Histórico de Registros"
	return resp, nil
}

func (s *ReportServiceImpl) preview(ctx context.Context, period string, start, end civil.Date) (report.PeriodReportResponse, error) {
	records, err := s.attendanceRepo.QueryRange(ctx, start, end)
	if err != nil {
		return report.PeriodReportResponse{}, fmt.Errorf("failed to load punches: %w", err)
	}

	agg := report.BuildPeriodReport(records, start, end, s.holidays)

	resp := report.PeriodReportResponse{
		Period:       period,
		StartDate:    start.String(),
		EndDate:      end.String(),
		Days:         make([]report.DayRow, 0, len(agg.Days)),
		TotalHours:   worktime.FormatMinutes(agg.TotalMinutes),
		WorkedDays:   agg.WorkedDays,
		AverageHours: worktime.FormatMinutes(agg.AverageMinutes),
	}
	for _, day := range agg.Days {
		row := newDayRow(day, missingPreview)
		row.Total = previewTotal(day)
		if row.IsHoliday {
			row.DateLabel += holidaySuffix
		}
		resp.Days = append(resp.Days, row)
	}
	if agg.IsEmpty() {
		resp.Message = report.NoRecordsMessage
	}

	return resp, nil
}

// GenerateMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	year, month := s.resolveMonth(req)
	start, end := calendar.Month(year, month)

	var (
		records []attendance.Record
		profile settings.Profile
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.QueryRange(gCtx, start, end)
		if err != nil {
			return fmt.Errorf("failed to load punches: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		profile, err = s.settingsService.Profile(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	agg := report.BuildMonthlyReport(records, year, month, s.holidays, s.policy)

	resp := report.MonthlyReportResponse{
		Title:    "ESPELHO DE PONTO",
		Subtitle: "Relatório Mensal de Ponto",
		Year:     year,
		Month:    int(month),
		Header:   s.timesheetHeader(profile, month),
		Days:     make([]report.DayRow, 0, len(agg.Days)),
		Summary: report.MonthlySummary{
			TotalHours:   worktime.FormatMinutes(agg.TotalMinutes),
			WorkedDays:   agg.WorkedDays,
			AverageHours: worktime.FormatMinutes(agg.AverageMinutes),
		},
	}
	for _, day := range agg.Days {
		row := newDayRow(day, missingMonthly)
		row.DateLabel = day.Date.In(time.UTC).Format("02/01")
		row.Weekday = calendar.WeekdayAbbrev(day.Weekday)
		row.Total = monthlyTotal(day)
		row.Tone = tone(day)
		switch {
		case day.IsHoliday:
			row.Observation = day.HolidayName
		case day.DayOff:
			row.Observation = s.policy.DayOff.Label
		}
		resp.Days = append(resp.Days, row)
	}

	return resp, nil
}

// ExportMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	renderer, ok := s.renderers[req.Format]
	if !ok {
		return report.ExportFile{}, report.ErrUnsupportedFormat
	}

	monthly, err := s.GenerateMonthlyReport(ctx, req.MonthlyReportRequest)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := renderer.Render(s.timesheetDocument(monthly))
	if err != nil {
		slog.Error("Failed to render monthly report", "format", req.Format, "error", err)
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}

	filename := fmt.Sprintf("espelho_ponto_%s_%d.%s",
		strings.ToLower(calendar.MonthName(time.Month(monthly.Month))), monthly.Year, renderer.Extension())

	return report.ExportFile{
		Filename:    filename,
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) resolveMonth(req report.MonthlyReportRequest) (int, time.Month) {
	today := civil.DateOf(s.now().In(s.loc))
	year, month := today.Year, today.Month
	if req.Year != 0 {
		year = req.Year
	}
	if req.Month != 0 {
		month = time.Month(req.Month)
	}
	return year, month
}

func (s *ReportServiceImpl) timesheetHeader(profile settings.Profile, month time.Month) report.TimesheetHeader {
	snap := profile.Snapshot()

	admission := attendance.NotInformedFeminine
	if d, ok := profile.AdmissionDate(); ok {
		admission = calendar.FormatBR(d)
	}

	customHours, _ := profile.CustomHoursValue()
	schedule := s.policy.Schedule(string(profile.ScheduleKind()), customHours)

	return report.TimesheetHeader{
		Employee:      snap.Name,
		Department:    snap.Department,
		Role:          snap.Role,
		Company:       snap.Company,
		AdmissionDate: admission,
		WeeklyHours:   formatHours(schedule.WeeklyHours),
		MonthlyHours:  formatHours(schedule.MonthlyHours),
		StandardShift: schedule.Shift,
		Month:         calendar.MonthName(month),
	}
}

func (s *ReportServiceImpl) timesheetDocument(m report.MonthlyReportResponse) report.Document {
	h := m.Header
	doc := report.Document{
		Title:    m.Title,
		Subtitle: m.Subtitle,
		Info: []report.Pair{
			{Label: "Funcionário", Value: h.Employee},
			{Label: "Setor", Value: h.Department},
			{Label: "Função", Value: h.Role},
			{Label: "Empresa", Value: h.Company},
			{Label: "Data admissão", Value: h.AdmissionDate},
			{Label: "Horas Semanais", Value: h.WeeklyHours},
			{Label: "Horas Mensais", Value: h.MonthlyHours},
			{Label: "Jornada Padrão", Value: h.StandardShift},
			{Label: "Mês", Value: h.Month},
		},
		Header:       []string{"Data", "Dia", "Entrada", "Intervalo", "Retorno", "Saída", "Total", "Obs."},
		Empty:        report.NoRecordsMessage,
		SummaryTitle: "Resumo Mensal",
		Summary: []report.Pair{
			{Label: "Total do mês", Value: m.Summary.TotalHours},
			{Label: "Dias Trabalhados", Value: strconv.Itoa(m.Summary.WorkedDays)},
			{Label: "Média diária", Value: m.Summary.AverageHours},
		},
		Footer: "Gerado em: " + s.now().In(s.loc).Format("02/01/2006 às 15:04:05"),
	}

	for _, d := range m.Days {
		doc.Rows = append(doc.Rows, report.Row{
			Cells: []string{d.DateLabel, d.Weekday, d.CheckIn, d.BreakStart, d.BreakEnd, d.CheckOut, d.Total, d.Observation},
			Tone:  d.Tone,
		})
	}
	return doc
}

func newDayRow(day report.DayAggregate, missing string) report.DayRow {
	row := report.DayRow{
		Date:        day.Date.String(),
		DateLabel:   calendar.FormatBR(day.Date),
		Weekday:     calendar.WeekdayName(day.Weekday),
		CheckIn:     day.Punch(attendance.CheckIn, missing),
		BreakStart:  day.Punch(attendance.BreakStart, missing),
		BreakEnd:    day.Punch(attendance.BreakEnd, missing),
		CheckOut:    day.Punch(attendance.CheckOut, missing),
		Status:      string(day.Status),
		IsHoliday:   day.IsHoliday,
		HolidayName: day.HolidayName,
		DayOff:      day.DayOff,
		Tone:        tone(day),
	}

	for _, t := range attendance.PunchTypes {
		r, ok := day.Punches[t]
		if !ok || r.Photo == "" {
			continue
		}
		if row.Photos == nil {
			row.Photos = make(map[string]string, len(day.Punches))
		}
		row.Photos[string(t)] = r.Photo
	}

	return row
}

func previewTotal(day report.DayAggregate) string {
	if day.WorkedMinutes == nil {
		return missingPreview
	}
	return worktime.FormatMinutes(*day.WorkedMinutes)
}

// monthlyTotal prints 00:00 for days not fully punched and "-" for days
// whose punches are out of order.
func monthlyTotal(day report.DayAggregate) string {
	switch {
	case day.Status == attendance.DayInvalidOrder:
		return missingPreview
	case day.WorkedMinutes == nil:
		return missingMonthly
	}
	return worktime.FormatMinutes(*day.WorkedMinutes)
}

// tone picks the row highlight. Sundays win over holidays, which win over
// days off.
func tone(day report.DayAggregate) report.Tone {
	switch {
	case day.Weekday == time.Sunday:
		return report.ToneSunday
	case day.IsHoliday:
		return report.ToneHoliday
	case day.DayOff:
		return report.ToneDayOff
	}
	return report.ToneNormal
}

// formatHours prints whole hours without decimals and anything else with
// one decimal and a comma separator.
func formatHours(h decimal.Decimal) string {
	h = h.Round(1)
	if h.IsInteger() {
		return h.StringFixed(0)
	}
	return strings.Replace(h.StringFixed(1), ".", ",", 1)
}

// Option customizes the report service.
type Option func(*ReportServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ReportServiceImpl) {
		s.now = now
	}
}

// WithRenderer registers the renderer used for format.
func WithRenderer(format string, r report.Renderer) Option {
	return func(s *ReportServiceImpl) {
		s.renderers[format] = r
	}
}

func NewReportService(
	attendanceRepo attendance.Repository,
	settingsService settings.SettingsService,
	holidays holiday.Lookup,
	policy *config.Policy,
	loc *time.Location,
	opts ...Option,
) report.ReportService {
	s := &ReportServiceImpl{
		attendanceRepo:  attendanceRepo,
		settingsService: settingsService,
		holidays:        holidays,
		policy:          policy,
		renderers:       make(map[string]report.Renderer),
		loc:             loc,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
