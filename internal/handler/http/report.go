package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Period(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// optionalInt parses an optional query parameter; empty means zero.
func optionalInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func parseMonthYear(w http.ResponseWriter, r *http.Request) (month, year int, ok bool) {
	month, ok = optionalInt(r, "month")
	if !ok {
		response.BadRequest(w, "invalid month parameter", nil)
		return 0, 0, false
	}
	year, ok = optionalInt(r, "year")
	if !ok {
		response.BadRequest(w, "invalid year parameter", nil)
		return 0, 0, false
	}
	return month, year, true
}

// Period handles GET /reports/period?period=month|year&month=&year=
func (h *reportHandlerImpl) Period(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parseMonthYear(w, r)
	if !ok {
		return
	}

	req := report.PeriodReportRequest{
		Period: r.URL.Query().Get("period"),
		Month:  month,
		Year:   year,
	}

	result, err := h.reportService.GeneratePeriodReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History handles GET /history?period=day|week|month|custom&start_date=&end_date=
func (h *reportHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.HistoryRequest{
		Period:    query.Get("period"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	result, err := h.reportService.History(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly handles GET /reports/monthly?month=&year=
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parseMonthYear(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateMonthlyReport(r.Context(), report.MonthlyReportRequest{
		Month: month,
		Year:  year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthly handles GET /reports/monthly/export?month=&year=&format=pdf|xlsx
func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parseMonthYear(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.ExportMonthlyReport(r.Context(), report.ExportRequest{
		MonthlyReportRequest: report.MonthlyReportRequest{Month: month, Year: year},
		Format:               r.URL.Query().Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}
