package holiday

import (
	"context"
	"strconv"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type holidayServiceImpl struct {
	table *Table
}

func NewHolidayService(table *Table) holiday.HolidayService {
	return &holidayServiceImpl{table: table}
}

// List implements holiday.HolidayService.
func (s *holidayServiceImpl) List(ctx context.Context, req holiday.ListRequest) (holiday.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.ListResponse{}, err
	}

	year := 0
	if req.Year != "" {
		year, _ = strconv.Atoi(req.Year)
	}

	resp := holiday.ListResponse{
		Origin:   s.table.Origin(),
		Holidays: []holiday.HolidayResponse{},
	}
	for _, e := range s.table.Entries() {
		if year != 0 && e.Date.Year != year {
			continue
		}
		resp.Holidays = append(resp.Holidays, toResponse(e))
	}
	return resp, nil
}

// Get implements holiday.HolidayService.
func (s *holidayServiceImpl) Get(ctx context.Context, date string) (holiday.HolidayResponse, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return holiday.HolidayResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	name, found := s.table.Lookup(d)
	if !found {
		return holiday.HolidayResponse{}, holiday.ErrHolidayNotFound
	}
	return toResponse(holiday.Holiday{Date: d, Name: name}), nil
}

// Refresh implements holiday.HolidayService.
func (s *holidayServiceImpl) Refresh(ctx context.Context) error {
	s.table.Load(ctx)
	return nil
}

func toResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		Date:    h.Date.String(),
		Name:    h.Name,
		Weekday: calendar.WeekdayName(calendar.Weekday(h.Date)),
	}
}
