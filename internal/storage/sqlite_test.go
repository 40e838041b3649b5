package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/campaign-engine/pkg/state"
)

func newTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	ss, err := NewSQLiteStorage(path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })
	return ss
}

func TestSQLiteStorage_RequiresPath(t *testing.T) {
	_, err := NewSQLiteStorage("", testLogger())
	assert.Error(t, err)
}

func TestSQLiteStorage_SaveAndLoadSession(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	ss := state.NewSessionState()
	ss.Location = "Thistletop"
	ss.InCombat = true
	ss.InitiativeOrder = []string{"Merisiel", "Nualia"}

	require.NoError(t, store.SaveSession(ctx, ss.ID, ss))

	loaded, err := store.LoadSession(ctx, ss.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, ss.ID, loaded.ID)
	assert.Equal(t, "Thistletop", loaded.Location)
	assert.True(t, loaded.InCombat)
	assert.Equal(t, []string{"Merisiel", "Nualia"}, loaded.InitiativeOrder)
}

func TestSQLiteStorage_SaveOverwrites(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	ss := state.NewSessionState()
	require.NoError(t, store.SaveSession(ctx, ss.ID, ss))

	ss.Location = "Sandpoint Cathedral"
	require.NoError(t, store.SaveSession(ctx, ss.ID, ss))

	loaded, err := store.LoadSession(ctx, ss.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Sandpoint Cathedral", loaded.Location)
}

func TestSQLiteStorage_LoadNonExistentSession(t *testing.T) {
	store := newTestSQLite(t)

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSQLiteStorage_DeleteSession(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	ss := state.NewSessionState()
	require.NoError(t, store.SaveSession(ctx, ss.ID, ss))
	require.NoError(t, store.DeleteSession(ctx, ss.ID))

	loaded, err := store.LoadSession(ctx, ss.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
