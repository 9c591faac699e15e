package holiday

import (
	"strconv"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type ListRequest struct {
	// Year filters the entries; empty lists every loaded year.
	Year string `json:"year"`
}

func (r *ListRequest) Validate() error {
	if r.Year == "" {
		return nil
	}
	year, err := strconv.Atoi(r.Year)
	if err != nil || !validator.IsValidYear(year) {
		return validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be a four digit number",
		}}
	}
	return nil
}

type HolidayResponse struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

type ListResponse struct {
	Origin   Origin            `json:"origin"`
	Holidays []HolidayResponse `json:"holidays"`
}
