// Package state describes the key/blob store that holds every piece of
// persisted application state.
package state

import "context"

// Keys of the persisted blobs.
const (
	KeyAttendanceRecords = "attendanceRecords"
	KeySettings          = "settings"
	KeyLastKnownLocation = "lastKnownLocation"
	KeyLastBackup        = "lastBackupTimestamp"
)

// Repository stores opaque blobs by key.
type Repository interface {
	// Get returns ErrNotFound when the key was never written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Transactor runs fn so that every Set made through the ctx it receives is
// applied together or not at all.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
