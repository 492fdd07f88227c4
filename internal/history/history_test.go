package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "impostor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRecordAndCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.LobbyCreated(ctx, "12345678", "sredni", 5, now))
	require.NoError(t, st.LobbyCreated(ctx, "87654321", "latwy", 3, now))
	require.NoError(t, st.GameStarted(ctx, "12345678", 4, now))

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Lobbies)
	assert.Equal(t, 1, counts.Games)
}

func TestDuplicateRowsAreIgnored(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.LobbyCreated(ctx, "12345678", "sredni", 5, now))
	require.NoError(t, st.LobbyCreated(ctx, "12345678", "sredni", 5, now))
	require.NoError(t, st.GameStarted(ctx, "12345678", 3, now))
	require.NoError(t, st.GameStarted(ctx, "12345678", 3, now))

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Lobbies)
	assert.Equal(t, 1, counts.Games)
}

func TestOpenCreatesParentDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "deeper", "app.db")
	st, err := Open(dsn)
	require.NoError(t, err)
	defer st.Close()

	counts, err := st.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Lobbies)
}
