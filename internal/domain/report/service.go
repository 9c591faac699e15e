package report

import "context"

type ReportService interface {
	// GeneratePeriodReport builds the monthly or yearly preview.
	GeneratePeriodReport(ctx context.Context, req PeriodReportRequest) (PeriodReportResponse, error)

	// History lists the days with punches in a day, week, month or custom range.
	History(ctx context.Context, req HistoryRequest) (PeriodReportResponse, error)

	// GenerateMonthlyReport builds the timesheet with every day of the month.
	GenerateMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// ExportMonthlyReport renders the timesheet as a pdf or xlsx file.
	ExportMonthlyReport(ctx context.Context, req ExportRequest) (ExportFile, error)
}
