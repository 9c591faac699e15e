package location

import "context"

// Repository persists the last known location.
type Repository interface {
	// Get returns ErrLocationNotFound when nothing was saved yet.
	Get(ctx context.Context) (Saved, error)
	Save(ctx context.Context, saved Saved) error
}

// Geocoder resolves coordinates into a city/state pair.
type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) (Location, error)
}
