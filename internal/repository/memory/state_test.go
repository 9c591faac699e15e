package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRepository_GetSet(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	_, err := repo.Get(ctx, state.KeySettings)
	assert.ErrorIs(t, err, state.ErrNotFound)

	require.NoError(t, repo.Set(ctx, state.KeySettings, []byte(`{"name":"Ana"}`)))
	raw, err := repo.Get(ctx, state.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana"}`, string(raw))
}

func TestStateRepository_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()
	require.NoError(t, repo.Set(ctx, state.KeyAttendanceRecords, []byte(`[]`)))

	boom := errors.New("boom")
	err := repo.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Set(ctx, state.KeyAttendanceRecords, []byte(`[{"x":1}]`)))
		require.NoError(t, repo.Set(ctx, state.KeySettings, []byte(`{}`)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	raw, err := repo.Get(ctx, state.KeyAttendanceRecords)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	_, err = repo.Get(ctx, state.KeySettings)
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestStateRepository_RollbackKeepsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()
	require.NoError(t, repo.Set(ctx, state.KeyAttendanceRecords, []byte(`[]`)))

	err := repo.WithinTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, repo.Set(txCtx, state.KeySettings, []byte(`{"name":"New"}`)))
		// A punch saved concurrently, outside the transaction.
		require.NoError(t, repo.Set(ctx, state.KeyAttendanceRecords, []byte(`[{"type":"check_in"}]`)))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	raw, err := repo.Get(ctx, state.KeyAttendanceRecords)
	require.NoError(t, err)
	assert.Equal(t, `[{"type":"check_in"}]`, string(raw))

	_, err = repo.Get(ctx, state.KeySettings)
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestReadJSON_ToleratesCorruption(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	value, found, err := state.ReadJSON[[]string](ctx, repo, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)

	require.NoError(t, repo.Set(ctx, "broken", []byte(`["a", `)))
	value, found, err = state.ReadJSON[[]string](ctx, repo, "broken")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)

	require.NoError(t, state.WriteJSON(ctx, repo, "ok", []string{"a", "b"}))
	value, found, err = state.ReadJSON[[]string](ctx, repo, "ok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, value)
}
