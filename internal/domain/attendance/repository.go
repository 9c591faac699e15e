package attendance

import (
	"context"

	"cloud.google.com/go/civil"
)

// Repository is the attendance store. Implementations serialize writers.
type Repository interface {
	All(ctx context.Context) ([]Record, error)

	// Upsert inserts the record or replaces the one holding the same
	// (Date, Type) slot.
	Upsert(ctx context.Context, record Record) error

	// QueryRange returns the records with start <= Date <= end.
	QueryRange(ctx context.Context, start, end civil.Date) ([]Record, error)

	QueryDay(ctx context.Context, date civil.Date) (map[PunchType]Record, error)

	// ReplaceAll swaps the whole collection, used by backup import.
	ReplaceAll(ctx context.Context, records []Record) error
}

// BackupHook runs after each successful upsert.
type BackupHook interface {
	MaybeBackup(ctx context.Context) error
}
