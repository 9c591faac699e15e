package settings

import (
	"context"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
)

type SettingsService interface {
	Get(ctx context.Context) (ProfileResponse, error)
	Save(ctx context.Context, req SaveRequest) (ProfileResponse, error)

	// Profile returns the stored profile as is, for reports.
	Profile(ctx context.Context) (Profile, error)

	// Snapshot returns the employee block copied into new punches.
	Snapshot(ctx context.Context) (attendance.EmployeeSnapshot, error)
}
