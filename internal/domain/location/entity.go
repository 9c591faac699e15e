package location

import "fmt"

// UnavailableLabel is shown when neither a fresh lookup nor a saved
// location exists.
const UnavailableLabel = "Localização indisponível"

// Location is the city/state snapshot attached to punches.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

func (l *Location) IsZero() bool {
	return l == nil || (l.City == "" && l.State == "")
}

// Label renders "City - State".
func (l *Location) Label() string {
	if l.IsZero() {
		return UnavailableLabel
	}
	return fmt.Sprintf("%s - %s", l.City, l.State)
}

// Coordinates remembers where a location was last resolved so nearby
// lookups can reuse it.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Saved is the persisted last-known location.
type Saved struct {
	Location
	ResolvedAt *Coordinates `json:"resolvedAt,omitempty"`
}
