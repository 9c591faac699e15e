package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrAuthDisabled):
		Forbidden(w, "Admin access is not configured")

	// Punches
	case errors.Is(err, attendance.ErrInvalidPunchType),
		errors.Is(err, attendance.ErrInvalidRecord),
		errors.Is(err, attendance.ErrPhotoRequired),
		errors.Is(err, worktime.ErrInvalidClock),
		errors.Is(err, worktime.ErrInvalidPunchOrder),
		errors.Is(err, file.ErrInvalidDataURL):
		BadRequest(w, err.Error(), nil)

	// Reports
	case errors.Is(err, report.ErrInvalidPeriod),
		errors.Is(err, report.ErrMissingCustomRange),
		errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrRenderFailed):
		InternalServerError(w, "Failed to generate report file")

	// Backup
	case errors.Is(err, backup.ErrInvalidBackupFormat),
		errors.Is(err, backup.ErrEmptyBackup):
		BadRequest(w, err.Error(), nil)

	// Lookups
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "No saved location")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
