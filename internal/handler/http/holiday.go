package http

import (
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// List handles GET /holidays?year=
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.holidayService.List(r.Context(), holiday.ListRequest{
		Year: r.URL.Query().Get("year"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /holidays/{date}
func (h *holidayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.holidayService.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
