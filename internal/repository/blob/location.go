package blob

import (
	"context"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
)

type locationRepository struct {
	repo state.Repository
}

func NewLocationRepository(repo state.Repository) location.Repository {
	return &locationRepository{repo: repo}
}

// Get implements location.Repository.
func (l *locationRepository) Get(ctx context.Context) (location.Saved, error) {
	saved, found, err := state.ReadJSON[location.Saved](ctx, l.repo, state.KeyLastKnownLocation)
	if err != nil {
		return location.Saved{}, err
	}
	if !found || saved.Location.IsZero() {
		return location.Saved{}, location.ErrLocationNotFound
	}
	return saved, nil
}

// Save implements location.Repository.
func (l *locationRepository) Save(ctx context.Context, saved location.Saved) error {
	return state.WriteJSON(ctx, l.repo, state.KeyLastKnownLocation, saved)
}
