package location

import "context"

type Service interface {
	// Resolve reverse-geocodes the coordinates and remembers the result.
	// Failures fall back to the last known location.
	Resolve(ctx context.Context, req ResolveRequest) (LocationResponse, error)

	// Current returns the last known location.
	Current(ctx context.Context) (LocationResponse, error)

	// Snapshot returns the location to embed in a new punch, or nil.
	Snapshot(ctx context.Context) *Location
}
