package backup

import "context"

type BackupService interface {
	Export(ctx context.Context) (Snapshot, error)

	// Import replaces the stored records, and the settings and location
	// when present, all at once. Nothing changes when it fails.
	Import(ctx context.Context, raw []byte) (ImportResult, error)

	// MaybeBackup writes a backup file when the last one is older than the
	// configured interval.
	MaybeBackup(ctx context.Context) error
}
