package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL and starts from an empty
// app_state table. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, postgresql.EnsureSchema(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE app_state")
	require.NoError(t, err)

	return db
}
