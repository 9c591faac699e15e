package settings

import "context"

type Repository interface {
	// Get returns the zero Profile when nothing was saved yet.
	Get(ctx context.Context) (Profile, error)
	Save(ctx context.Context, profile Profile) error
}
