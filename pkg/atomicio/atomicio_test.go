package atomicio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempFileCommitPublishesContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ab", "cdef")

	tf, err := NewTempFile(target, 0o444)
	require.NoError(t, err)
	_, err = tf.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, tf.Commit())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestTempFileCommitIsIdempotentForExistingContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "obj")
	require.NoError(t, os.WriteFile(target, []byte("first"), 0o444))

	tf, err := NewTempFile(target, 0o444)
	require.NoError(t, err)
	_, err = tf.Write([]byte("second"))
	require.NoError(t, err)
	require.NoError(t, tf.Commit())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data), "existing object wins, write is a no-op dedup")
}

func TestLockRejectsSecondAcquire(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "index")

	l1, err := Acquire(target)
	require.NoError(t, err)
	defer l1.Rollback()

	_, err = Acquire(target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerr.LockContention))
}

func TestLockCommitPublishesAndRollbackAfterCommitIsNoop(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "HEAD")

	l, err := Acquire(target)
	require.NoError(t, err)
	_, err = l.Write([]byte("deadbeef"))
	require.NoError(t, err)
	require.NoError(t, l.Commit())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", string(data))

	// Rollback after commit must not remove the now-published target.
	require.NoError(t, l.Rollback())
	_, err = os.Stat(target)
	require.NoError(t, err)
}

func TestUpgradeSeesPriorContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "index")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	l, err := Acquire(target)
	require.NoError(t, err)
	defer l.Rollback()

	rw, err := l.Upgrade()
	require.NoError(t, err)
	assert.True(t, rw.Exists())

	data, err := rw.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestUpgradeOnMissingTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "index")

	l, err := Acquire(target)
	require.NoError(t, err)
	defer l.Rollback()

	rw, err := l.Upgrade()
	require.NoError(t, err)
	assert.False(t, rw.Exists())
}
