package blob

import (
	"context"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
)

type settingsRepository struct {
	repo state.Repository
}

func NewSettingsRepository(repo state.Repository) settings.Repository {
	return &settingsRepository{repo: repo}
}

// Get implements settings.Repository.
func (s *settingsRepository) Get(ctx context.Context) (settings.Profile, error) {
	profile, _, err := state.ReadJSON[settings.Profile](ctx, s.repo, state.KeySettings)
	return profile, err
}

// Save implements settings.Repository.
func (s *settingsRepository) Save(ctx context.Context, profile settings.Profile) error {
	return state.WriteJSON(ctx, s.repo, state.KeySettings, profile)
}
