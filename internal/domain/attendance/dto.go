package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	Type string `json:"type"`
	Time string `json:"time"`
	// Date defaults to today in the configured timezone.
	Date string `json:"date,omitempty"`
	// Photo is a reference to an already stored photo. Ignored when a file
	// is uploaded with the request.
	Photo      string                `json:"photo,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

const maxPhotoSize = 10 << 20

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePunchType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: ErrInvalidPunchType.Error(),
		})
	}

	if validator.IsEmpty(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time is required",
		})
	} else if _, ok := validator.IsValidClock(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.FileHeader == nil {
		if validator.IsEmpty(r.Photo) {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: ErrPhotoRequired.Error(),
			})
		}
	} else {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > maxPhotoSize {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "punch photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *RangeRequest) Validate() error {
	if _, _, errs := validator.DateRange("start_date", r.StartDate, "end_date", r.EndDate); len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	Date          string             `json:"date"`
	Type          PunchType          `json:"type"`
	TypeLabel     string             `json:"type_label"`
	Time          string             `json:"time"`
	Photo         string             `json:"photo"`
	Location      *location.Location `json:"location,omitempty"`
	LocationLabel string             `json:"location_label"`
	Employee      EmployeeSnapshot   `json:"employee"`
	RecordedAt    *time.Time         `json:"recorded_at,omitempty"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		Date:          r.Date.String(),
		Type:          r.Type,
		TypeLabel:     r.Type.Label(),
		Time:          r.Time.String(),
		Photo:         r.Photo,
		Location:      r.Location,
		LocationLabel: r.Location.Label(),
		Employee:      r.Employee,
		RecordedAt:    r.RecordedAt,
	}
}

type DailySummaryResponse struct {
	Date        string           `json:"date"`
	Punches     []RecordResponse `json:"punches"`
	Status      DayStatus        `json:"status"`
	WorkedHours *string          `json:"worked_hours,omitempty"`
}

// NewDailySummary orders the punches of one day and computes its total.
func NewDailySummary(date string, punches map[PunchType]Record) DailySummaryResponse {
	resp := DailySummaryResponse{
		Date:    date,
		Punches: []RecordResponse{},
	}
	for _, t := range PunchTypes {
		if r, ok := punches[t]; ok {
			resp.Punches = append(resp.Punches, NewRecordResponse(r))
		}
	}

	minutes, status := Summarize(punches)
	resp.Status = status
	if minutes != nil {
		formatted := worktime.FormatMinutes(*minutes)
		resp.WorkedHours = &formatted
	}
	return resp
}
