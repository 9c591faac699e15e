package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.Repository
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.ProfileResponse, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return settings.ProfileResponse{}, err
	}
	return settings.NewProfileResponse(profile), nil
}

// Save implements settings.SettingsService.
func (s *SettingsServiceImpl) Save(ctx context.Context, req settings.SaveRequest) (settings.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.ProfileResponse{}, err
	}

	profile := req.ToProfile()
	if err := s.Repository.Save(ctx, profile); err != nil {
		return settings.ProfileResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.Info("Settings saved", "schedule", profile.Schedule)
	return settings.NewProfileResponse(profile), nil
}

// Profile implements settings.SettingsService.
func (s *SettingsServiceImpl) Profile(ctx context.Context) (settings.Profile, error) {
	profile, err := s.Repository.Get(ctx)
	if err != nil {
		return settings.Profile{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return profile, nil
}

// Snapshot implements settings.SettingsService.
func (s *SettingsServiceImpl) Snapshot(ctx context.Context) (attendance.EmployeeSnapshot, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return attendance.EmployeeSnapshot{}, err
	}
	return profile.Snapshot(), nil
}

func NewSettingsService(settingsRepo settings.Repository) settings.SettingsService {
	return &SettingsServiceImpl{
		Repository: settingsRepo,
	}
}
