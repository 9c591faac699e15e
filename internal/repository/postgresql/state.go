package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const schema = `
	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// EnsureSchema creates the state table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

type stateRepository struct {
	db *database.DB
}

func NewStateRepository(db *database.DB) state.Repository {
	return &stateRepository{db: db}
}

// Get implements state.Repository.
func (s *stateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	q := GetQuerier(ctx, s.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, state.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get state %s: %w", key, err)
	}

	return []byte(value), nil
}

// Set implements state.Repository.
func (s *stateRepository) Set(ctx context.Context, key string, value []byte) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to set state %s: %w", key, err)
	}

	return nil
}
