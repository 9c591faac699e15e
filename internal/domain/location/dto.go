package location

import "github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"

type ResolveRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Source values for LocationResponse.
const (
	SourceGeocoder    = "geocoder"
	SourceNearby      = "nearby"
	SourceLastKnown   = "last_known"
	SourceUnavailable = "unavailable"
)

type LocationResponse struct {
	Location *Location `json:"location,omitempty"`
	Label    string    `json:"label"`
	Source   string    `json:"source"`
	Stale    bool      `json:"stale,omitempty"`
}
