package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigStore_SetAndGet tests basic persistence of typed values.
func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("discovery.marker_filename", "dealsync.txt"))
	require.NoError(t, store.Set("discovery.max_depth", 10))
	require.NoError(t, store.Set("upload.include_closed", true))
	require.NoError(t, store.Set("upload.extensions", []string{".pdf", ".docx"}))

	assert.Equal(t, "dealsync.txt", store.GetString("discovery.marker_filename"))
	assert.Equal(t, 10, store.GetInt("discovery.max_depth"))
	assert.True(t, store.GetBool("upload.include_closed"))
	assert.Equal(t, []string{".pdf", ".docx"}, store.GetStringSlice("upload.extensions"))
}

// TestConfigStore_MissingKeys tests zero values for absent keys.
func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))
}

// TestConfigStore_PersistsAcrossInstances tests that a second store
// sees values the first wrote.
func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("dealtrack.base_url", "https://api.dealtrack.example"))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://api.dealtrack.example", second.GetString("dealtrack.base_url"))
}

// TestConfigStore_FlattensNestedTables tests that TOML tables read back
// as dot-notation keys.
func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[discovery]\nmarker_filename = \"deal.txt\"\nmax_depth = 6\n\n[audit]\nbackend = \"postgres\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "deal.txt", store.GetString("discovery.marker_filename"))
	assert.Equal(t, 6, store.GetInt("discovery.max_depth"))
	assert.Equal(t, "postgres", store.GetString("audit.backend"))
}

// TestConfigStore_Path tests the reported file location.
func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
