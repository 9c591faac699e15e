package location

import "errors"

var (
	ErrLocationNotFound = errors.New("no saved location")
	ErrPlaceNotFound    = errors.New("city or state not found for coordinates")
)
