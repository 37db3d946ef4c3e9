package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDirectory_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "nested", "app")
	loc := NewLocalDirectory("app-data", root, time.Second)

	require.NoError(t, loc.WriteFile(ctx, "database.json", []byte(`{"a":1}`)))

	data, err := loc.ReadFile(ctx, "database.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	exists, size, err := loc.FileExists(ctx, "database.json")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(7), size)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestLocalDirectory_Overwrite(t *testing.T) {
	ctx := context.Background()
	loc := NewLocalDirectory("docs", t.TempDir(), 0)

	require.NoError(t, loc.WriteFile(ctx, "f.json", []byte("first version")))
	require.NoError(t, loc.WriteFile(ctx, "f.json", []byte("v2")))

	data, err := loc.ReadFile(ctx, "f.json")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestLocalDirectory_Missing(t *testing.T) {
	loc := NewLocalDirectory("docs", t.TempDir(), 0)

	_, err := loc.ReadFile(context.Background(), "nope.json")
	assert.ErrorIs(t, err, ErrNotExist)

	exists, _, err := loc.FileExists(context.Background(), "nope.json")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalDirectory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loc := NewLocalDirectory("docs", t.TempDir(), 0)

	err := loc.WriteFile(ctx, "f.json", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalDirectory_TimedOutWriteDoesNotReplace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.json"), []byte("old"), 0644))
	loc := NewLocalDirectory("docs", root, time.Nanosecond)

	err := loc.WriteFile(context.Background(), "f.json", []byte("new"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(root)
		return err == nil && len(entries) == 1
	}, time.Second, 5*time.Millisecond, "abandoned temp file is removed")

	data, err := os.ReadFile(filepath.Join(root, "f.json"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestLocalDirectory_UnwritableRoot(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	loc := NewLocalDirectory("docs", filepath.Join(blocker, "sub"), 0)

	err := loc.WriteFile(context.Background(), "f.json", []byte("x"))
	assert.Error(t, err)
}

func TestNewLocations(t *testing.T) {
	locs := NewLocations(Config{Locations: []LocationConfig{{Name: "a", Path: "/tmp/a"}, {Name: "b", Path: "/tmp/b"}}})
	require.Len(t, locs, 2)
	assert.Equal(t, "a", locs[0].Name())
	assert.Equal(t, "b", locs[1].Name())
}
