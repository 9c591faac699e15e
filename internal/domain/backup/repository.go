package backup

import (
	"context"
	"time"
)

// MarkRepository remembers when the last automatic backup ran.
type MarkRepository interface {
	// LastBackup returns ok=false when no backup ran yet.
	LastBackup(ctx context.Context) (t time.Time, ok bool, err error)
	SetLastBackup(ctx context.Context, t time.Time) error
}
