package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
)

type backupMarkRepository struct {
	repo state.Repository
}

func NewBackupMarkRepository(repo state.Repository) backup.MarkRepository {
	return &backupMarkRepository{repo: repo}
}

// LastBackup implements backup.MarkRepository. Both RFC 3339 and epoch
// milliseconds are accepted, quoted or not.
func (b *backupMarkRepository) LastBackup(ctx context.Context) (time.Time, bool, error) {
	raw, err := b.repo.Get(ctx, state.KeyLastBackup)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read last backup timestamp: %w", err)
	}

	value := string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	if value == "" {
		return time.Time{}, false, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true, nil
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms), true, nil
	}

	slog.Warn("Ignoring unreadable last backup timestamp", "value", value)
	return time.Time{}, false, nil
}

// SetLastBackup implements backup.MarkRepository.
func (b *backupMarkRepository) SetLastBackup(ctx context.Context, t time.Time) error {
	return state.WriteJSON(ctx, b.repo, state.KeyLastBackup, t.UTC().Format(time.RFC3339Nano))
}
