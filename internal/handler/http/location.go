package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	Resolve(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
}

type locationHandlerImpl struct {
	locationService location.Service
}

func NewLocationHandler(locationService location.Service) LocationHandler {
	return &locationHandlerImpl{
		locationService: locationService,
	}
}

// Resolve handles POST /location
func (h *locationHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	var req location.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.locationService.Resolve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Current handles GET /location
func (h *locationHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	result, err := h.locationService.Current(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
