package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor]\nscrolloff = 1\n")

	var calls atomic.Int32
	w, err := NewWatcher(path, func() { calls.Add(1) }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[editor]\nscrolloff = 2\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "config.toml", "")

	var calls atomic.Int32
	w, err := NewWatcher(path, func() { calls.Add(1) }, WithDebounce(0))
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(filepath.Dir(path), "other.toml")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcherSeesReplace(t *testing.T) {
	path := writeFile(t, "config.toml", "")

	var calls atomic.Int32
	w, err := NewWatcher(path, func() { calls.Add(1) }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("[editor]\ntab_width = 2\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := writeFile(t, "config.toml", "")

	w, err := NewWatcher(path, func() {})
	require.NoError(t, err)

	assert.Equal(t, path, w.Path())
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "config.toml"), func() {})
	assert.Error(t, err)
}
