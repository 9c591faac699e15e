package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ReadJSON decodes the blob stored under key. An absent, empty or
// undecodable blob yields the zero value and found=false; only storage
// failures are returned as errors.
func ReadJSON[T any](ctx context.Context, repo Repository, key string) (value T, found bool, err error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return value, false, nil
	}

	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		slog.Warn("Ignoring corrupted state blob", "key", key, "error", err)
		return value, false, nil
	}

	return decoded, true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, repo Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
