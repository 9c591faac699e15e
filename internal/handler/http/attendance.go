package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxPunchBody bounds a punch request, photo included.
const maxPunchBody = 12 << 20

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Day(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Record handles POST /punches. The body is either multipart, with the
// punch in the 'data' field and the picture in 'photo', or plain JSON
// carrying a photo reference or data URL.
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxPunchBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.PayloadTooLarge(w, "Request body too large")
				return
			}
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("photo")
		switch {
		case err == nil:
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		case errors.Is(err, http.ErrMissingFile):
			// a photo reference in 'data' is enough
		default:
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, "Request body too large")
			return
		}
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded successfully", result)
}

// Today handles GET /punches/today
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Day handles GET /punches/{date}
func (h *attendanceHandlerImpl) Day(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Day(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /punches?start_date=&end_date=
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.RangeRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	result, err := h.attendanceService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
