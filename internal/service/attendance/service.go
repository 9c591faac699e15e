package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	attendance.Repository
	settingsService settings.SettingsService
	locationService location.Service
	fileService     file.FileService
	backupHook      attendance.BackupHook
	hub             *sse.Hub
	loc             *time.Location
	now             func() time.Time
}

// RecordPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	punchType, err := attendance.ParsePunchType(req.Type)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	clock, err := worktime.ParseClock(req.Time)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	date := civil.DateOf(now.In(s.loc))
	if req.Date != "" {
		date, _ = validator.IsValidDate(req.Date)
	}

	photo, uploaded, err := s.storePhoto(ctx, req, date, punchType)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	employee, err := s.settingsService.Snapshot(ctx)
	if err != nil {
		slog.Warn("Failed to read settings for punch, using placeholders", "error", err)
		employee = attendance.EmployeeSnapshot{}.WithDefaults()
	}

	record := attendance.Record{
		Date:       date,
		Type:       punchType,
		Time:       clock,
		Photo:      photo,
		Location:   s.locationService.Snapshot(ctx),
		Employee:   employee,
		RecordedAt: &now,
	}

	if err := s.Repository.Upsert(ctx, record); err != nil {
		if uploaded {
			if delErr := s.fileService.DeleteFile(ctx, photo); delErr != nil {
				slog.Warn("Failed to remove photo of unsaved punch", "path", photo, "error", delErr)
			}
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to save punch: %w", err)
	}

	slog.Info("Punch recorded", "date", date.String(), "type", punchType, "time", clock.String())

	if s.backupHook != nil {
		if err := s.backupHook.MaybeBackup(ctx); err != nil {
			slog.Warn("Automatic backup failed", "error", err)
		}
	}

	s.publishSummary(ctx, date)

	return attendance.NewRecordResponse(record), nil
}

// storePhoto uploads the photo when one was sent and returns the reference
// to keep on the record, and whether a file was written.
func (s *AttendanceServiceImpl) storePhoto(ctx context.Context, req attendance.PunchRequest, date civil.Date, punchType attendance.PunchType) (string, bool, error) {
	switch {
	case req.FileHeader != nil:
		path, err := s.fileService.UploadPunchPhoto(ctx, date, string(punchType), req.File, req.FileHeader.Filename)
		if err != nil {
			return "", false, fmt.Errorf("failed to upload punch photo: %w", err)
		}
		return path, true, nil
	case strings.HasPrefix(req.Photo, "data:"):
		path, err := s.fileService.StorePunchDataURL(ctx, date, string(punchType), req.Photo)
		if err != nil {
			return "", false, fmt.Errorf("failed to store punch photo: %w", err)
		}
		return path, true, nil
	default:
		return strings.TrimSpace(req.Photo), false, nil
	}
}

func (s *AttendanceServiceImpl) publishSummary(ctx context.Context, date civil.Date) {
	if s.hub == nil {
		return
	}

	day, err := s.Repository.QueryDay(ctx, date)
	if err != nil {
		slog.Warn("Failed to load daily summary for event", "date", date.String(), "error", err)
		return
	}

	s.hub.Publish(sse.TopicPunches, sse.Event{
		Event: sse.EventPunchRecorded,
		Data:  attendance.NewDailySummary(date.String(), day),
	})
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.DailySummaryResponse, error) {
	return s.summary(ctx, civil.DateOf(s.now().In(s.loc)))
}

// Day implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Day(ctx context.Context, date string) (attendance.DailySummaryResponse, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return attendance.DailySummaryResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return s.summary(ctx, d)
}

func (s *AttendanceServiceImpl) summary(ctx context.Context, date civil.Date) (attendance.DailySummaryResponse, error) {
	day, err := s.Repository.QueryDay(ctx, date)
	if err != nil {
		return attendance.DailySummaryResponse{}, fmt.Errorf("failed to load punches: %w", err)
	}
	return attendance.NewDailySummary(date.String(), day), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.RangeRequest) ([]attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	records, err := s.Repository.QueryRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}

	result := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, attendance.NewRecordResponse(r))
	}
	return result, nil
}

// Option customizes the attendance service.
type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

// WithBackupHook runs hook after every saved punch.
func WithBackupHook(hook attendance.BackupHook) Option {
	return func(s *AttendanceServiceImpl) {
		s.backupHook = hook
	}
}

// WithHub publishes the daily summary after every saved punch.
func WithHub(hub *sse.Hub) Option {
	return func(s *AttendanceServiceImpl) {
		s.hub = hub
	}
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	settingsService settings.SettingsService,
	locationService location.Service,
	fileService file.FileService,
	loc *time.Location,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		Repository:      attendanceRepo,
		settingsService: settingsService,
		locationService: locationService,
		fileService:     fileService,
		loc:             loc,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
