package settings

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type SaveRequest struct {
	Name          string   `json:"name"`
	Company       string   `json:"company"`
	Role          string   `json:"role"`
	Department    string   `json:"department"`
	AdmissionDate string   `json:"admission_date"`
	Schedule      string   `json:"schedule"`
	CustomHours   *float64 `json:"custom_hours"`
}

func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AdmissionDate != "" {
		if _, ok := validator.IsValidDate(r.AdmissionDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "admission_date",
				Message: "admission_date must be in YYYY-MM-DD format",
			})
		}
	}

	schedule := ScheduleKind(r.Schedule)
	if r.Schedule == "" {
		schedule = DefaultSchedule
	}
	if !schedule.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule",
			Message: "schedule must be one of 8, 6, 4, custom",
		})
	}

	if schedule == ScheduleCustom {
		if r.CustomHours == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_hours",
				Message: "custom_hours is required for a custom schedule",
			})
		} else if *r.CustomHours <= 0 || *r.CustomHours > 24 {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_hours",
				Message: "custom_hours must be greater than 0 and at most 24",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToProfile converts a validated request.
func (r *SaveRequest) ToProfile() Profile {
	p := Profile{
		Name:       strings.TrimSpace(r.Name),
		Company:    strings.TrimSpace(r.Company),
		Role:       strings.TrimSpace(r.Role),
		Department: strings.TrimSpace(r.Department),
		Admission:  r.AdmissionDate,
		Schedule:   ScheduleKind(r.Schedule),
	}
	if p.Schedule == "" {
		p.Schedule = DefaultSchedule
	}
	if p.Schedule == ScheduleCustom && r.CustomHours != nil {
		p.CustomHours = strconv.FormatFloat(*r.CustomHours, 'f', -1, 64)
	}
	return p
}

type ProfileResponse struct {
	Name          string       `json:"name"`
	Company       string       `json:"company"`
	Role          string       `json:"role"`
	Department    string       `json:"department"`
	AdmissionDate *string      `json:"admission_date,omitempty"`
	Schedule      ScheduleKind `json:"schedule"`
	CustomHours   *float64     `json:"custom_hours,omitempty"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		Name:       p.Name,
		Company:    p.Company,
		Role:       p.Role,
		Department: p.Department,
		Schedule:   p.ScheduleKind(),
	}
	if d, ok := p.AdmissionDate(); ok {
		s := d.String()
		resp.AdmissionDate = &s
	}
	if resp.Schedule == ScheduleCustom {
		if h, ok := p.CustomHoursValue(); ok {
			resp.CustomHours = &h
		}
	}
	return resp
}
