package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
)

// Dir is where automatic backups are written in file storage.
const Dir = "backups"

const DefaultInterval = 24 * time.Hour

type BackupServiceImpl struct {
	attendanceRepo attendance.Repository
	settingsRepo   settings.Repository
	locationRepo   location.Repository
	markRepo       backup.MarkRepository
	transactor     state.Transactor
	storage        storage.FileStorage
	hub            *sse.Hub
	interval       time.Duration
	loc            *time.Location
	now            func() time.Time

	// mu keeps two punches from writing the same automatic backup.
	mu sync.Mutex
}

// Export implements backup.BackupService.
func (s *BackupServiceImpl) Export(ctx context.Context) (backup.Snapshot, error) {
	records, err := s.attendanceRepo.All(ctx)
	if err != nil {
		return backup.Snapshot{}, fmt.Errorf("failed to load punches: %w", err)
	}
	if records == nil {
		records = []attendance.Record{}
	}

	profile, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return backup.Snapshot{}, fmt.Errorf("failed to load settings: %w", err)
	}

	snapshot := backup.Snapshot{
		PontoRecords: records,
		UserSettings: &profile,
		LastBackup:   s.now().UTC(),
	}

	saved, err := s.locationRepo.Get(ctx)
	switch {
	case err == nil:
		loc := saved.Location
		snapshot.UserLocation = &loc
	case !errors.Is(err, location.ErrLocationNotFound):
		return backup.Snapshot{}, fmt.Errorf("failed to load location: %w", err)
	}

	return snapshot, nil
}

// Import implements backup.BackupService.
func (s *BackupServiceImpl) Import(ctx context.Context, raw []byte) (backup.ImportResult, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return backup.ImportResult{}, backup.ErrEmptyBackup
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return backup.ImportResult{}, fmt.Errorf("%w: %v", backup.ErrInvalidBackupFormat, err)
	}

	records, err := decodeRecords(fields["pontoRecords"])
	if err != nil {
		return backup.ImportResult{}, err
	}

	var profile *settings.Profile
	if present(fields["userSettings"]) {
		profile = &settings.Profile{}
		if err := json.Unmarshal(fields["userSettings"], profile); err != nil {
			return backup.ImportResult{}, fmt.Errorf("%w: userSettings: %v", backup.ErrInvalidBackupFormat, err)
		}
	}

	var loc *location.Location
	if present(fields["userLocation"]) {
		loc = &location.Location{}
		if err := json.Unmarshal(fields["userLocation"], loc); err != nil {
			return backup.ImportResult{}, fmt.Errorf("%w: userLocation: %v", backup.ErrInvalidBackupFormat, err)
		}
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.attendanceRepo.ReplaceAll(ctx, records); err != nil {
			return fmt.Errorf("failed to restore punches: %w", err)
		}
		if profile != nil {
			if err := s.settingsRepo.Save(ctx, *profile); err != nil {
				return fmt.Errorf("failed to restore settings: %w", err)
			}
		}
		if loc != nil {
			if err := s.locationRepo.Save(ctx, location.Saved{Location: *loc}); err != nil {
				return fmt.Errorf("failed to restore location: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return backup.ImportResult{}, err
	}

	result := backup.ImportResult{
		Records:          len(records),
		SettingsRestored: profile != nil,
		LocationRestored: loc != nil,
	}

	slog.Info("Backup imported", "records", result.Records, "settings", result.SettingsRestored, "location", result.LocationRestored)

	if s.hub != nil {
		s.hub.Publish(sse.TopicPunches, sse.Event{Event: sse.EventDataImported, Data: result})
	}

	return result, nil
}

// decodeRecords requires pontoRecords to be an array whose every element
// is a valid punch.
func decodeRecords(raw json.RawMessage) ([]attendance.Record, error) {
	if !present(raw) {
		return nil, backup.ErrInvalidBackupFormat
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, backup.ErrInvalidBackupFormat
	}

	records := make([]attendance.Record, 0, len(items))
	for i, item := range items {
		var r attendance.Record
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", backup.ErrInvalidBackupFormat, i, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", backup.ErrInvalidBackupFormat, i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// MaybeBackup implements backup.BackupService.
func (s *BackupServiceImpl) MaybeBackup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	last, ok, err := s.markRepo.LastBackup(ctx)
	if err != nil {
		return err
	}
	if ok && now.Sub(last) <= s.interval {
		return nil
	}

	snapshot, err := s.Export(ctx)
	if err != nil {
		return err
	}

	content, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	path := Dir + "/" + backup.FileName(civil.DateOf(now.In(s.loc)).String())
	if _, err := s.storage.Upload(ctx, bytes.NewReader(content), path, "application/json"); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	if err := s.markRepo.SetLastBackup(ctx, now); err != nil {
		return err
	}

	slog.Info("Automatic backup written", "path", path, "records", len(snapshot.PontoRecords))
	return nil
}

// Option customizes the backup service.
type Option func(*BackupServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *BackupServiceImpl) {
		s.now = now
	}
}

// WithInterval sets how old the last backup may get.
func WithInterval(d time.Duration) Option {
	return func(s *BackupServiceImpl) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithHub announces imports to connected screens.
func WithHub(hub *sse.Hub) Option {
	return func(s *BackupServiceImpl) {
		s.hub = hub
	}
}

func NewBackupService(
	attendanceRepo attendance.Repository,
	settingsRepo settings.Repository,
	locationRepo location.Repository,
	markRepo backup.MarkRepository,
	transactor state.Transactor,
	fileStorage storage.FileStorage,
	loc *time.Location,
	opts ...Option,
) backup.BackupService {
	s := &BackupServiceImpl{
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		locationRepo:   locationRepo,
		markRepo:       markRepo,
		transactor:     transactor,
		storage:        fileStorage,
		interval:       DefaultInterval,
		loc:            loc,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
