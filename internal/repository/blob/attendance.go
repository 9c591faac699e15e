// Package blob implements the domain repositories on top of the key/blob
// state store. Every collection lives in a single JSON blob.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
)

type AttendanceStore struct {
	// mu serializes read-modify-write cycles on the records blob.
	mu   sync.Mutex
	repo state.Repository
}

var _ attendance.Repository = (*AttendanceStore)(nil)

func NewAttendanceStore(repo state.Repository) *AttendanceStore {
	return &AttendanceStore{repo: repo}
}

// All implements attendance.Repository.
func (s *AttendanceStore) All(ctx context.Context) ([]attendance.Record, error) {
	return s.load(ctx)
}

// Upsert implements attendance.Repository.
func (s *AttendanceStore) Upsert(ctx context.Context, record attendance.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].Key() == record.Key() {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	return s.save(ctx, records)
}

// QueryRange implements attendance.Repository.
func (s *AttendanceStore) QueryRange(ctx context.Context, start, end civil.Date) ([]attendance.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// QueryDay implements attendance.Repository.
func (s *AttendanceStore) QueryDay(ctx context.Context, date civil.Date) (map[attendance.PunchType]attendance.Record, error) {
	records, err := s.QueryRange(ctx, date, date)
	if err != nil {
		return nil, err
	}

	day := make(map[attendance.PunchType]attendance.Record, len(records))
	for _, r := range records {
		day[r.Type] = r
	}
	return day, nil
}

// ReplaceAll implements attendance.Repository. Later duplicates of the same
// (Date, Type) slot win.
func (s *AttendanceStore) ReplaceAll(ctx context.Context, records []attendance.Record) error {
	deduped := make(map[attendance.Key]attendance.Record, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		deduped[r.Key()] = r
	}

	result := make([]attendance.Record, 0, len(deduped))
	for _, r := range deduped {
		result = append(result, r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, result)
}

// load reads the records blob. Entries that no longer decode are skipped
// so one bad record cannot hide the others.
func (s *AttendanceStore) load(ctx context.Context) ([]attendance.Record, error) {
	raw, _, err := state.ReadJSON[[]json.RawMessage](ctx, s.repo, state.KeyAttendanceRecords)
	if err != nil {
		return nil, err
	}

	records := make([]attendance.Record, 0, len(raw))
	for i, item := range raw {
		var r attendance.Record
		if err := json.Unmarshal(item, &r); err != nil {
			slog.Warn("Skipping undecodable attendance record", "index", i, "error", err)
			continue
		}
		if err := r.Validate(); err != nil {
			slog.Warn("Skipping invalid attendance record", "index", i, "error", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *AttendanceStore) save(ctx context.Context, records []attendance.Record) error {
	sortRecords(records)
	if err := state.WriteJSON(ctx, s.repo, state.KeyAttendanceRecords, records); err != nil {
		return fmt.Errorf("failed to save attendance records: %w", err)
	}
	return nil
}

// sortRecords orders by date, then by punch order within the day.
func sortRecords(records []attendance.Record) {
	order := make(map[attendance.PunchType]int, len(attendance.PunchTypes))
	for i, t := range attendance.PunchTypes {
		order[t] = i
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date.Before(records[j].Date)
		}
		return order[records[i].Type] < order[records[j].Type]
	})
}
