// Package atomicio implements the two primitives every on-disk structure
// in the engine is built on: a write-once temp-then-rename for immutable
// objects, and an exclusive-create lockfile for structures that get
// read-modify-written (the index, HEAD, refs).
//
// Both rely on the same guarantee: POSIX rename(2) onto an existing path
// is atomic, so a reader never observes a partially written file.
package atomicio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-grit/grit/pkg/coreerr"
)

// TempFile stages content in a temporary sibling of its final path and
// publishes it with a single atomic rename. Used by the object store,
// where the final path is derived from the content's own hash and two
// writers racing to create the same object is expected and harmless.
type TempFile struct {
	f         *os.File
	tmpPath   string
	finalPath string
	mode      os.FileMode
	done      bool
}

// NewTempFile creates a temp file in the same directory as finalPath
// (required for the later rename to be atomic — renames across
// filesystems are not) and ensures that directory exists.
func NewTempFile(finalPath string, mode os.FileMode) (*TempFile, error) {
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, coreerr.New(coreerr.IOError, "mkdir", dir, err)
	}

	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return nil, coreerr.New(coreerr.IOError, "create_temp", dir, err)
	}

	return &TempFile{f: f, tmpPath: f.Name(), finalPath: finalPath, mode: mode}, nil
}

func (t *TempFile) Write(p []byte) (int, error) {
	n, err := t.f.Write(p)
	if err != nil {
		return n, coreerr.New(coreerr.IOError, "write", t.tmpPath, err)
	}
	return n, nil
}

// Commit fsyncs and renames the temp file onto finalPath. If finalPath
// already exists, Commit treats that as success and discards the temp
// file without writing — objects are content-addressed, so an existing
// file with the same name already has the same bytes.
func (t *TempFile) Commit() error {
	if t.done {
		return coreerr.New(coreerr.Invariant, "commit", t.finalPath, fmt.Errorf("already committed or aborted"))
	}
	t.done = true

	if _, err := os.Stat(t.finalPath); err == nil {
		t.f.Close()
		os.Remove(t.tmpPath)
		return nil
	}

	if err := t.f.Sync(); err != nil {
		t.f.Close()
		os.Remove(t.tmpPath)
		return coreerr.New(coreerr.IOError, "fsync", t.tmpPath, err)
	}
	if err := t.f.Close(); err != nil {
		os.Remove(t.tmpPath)
		return coreerr.New(coreerr.IOError, "close", t.tmpPath, err)
	}
	if err := os.Chmod(t.tmpPath, t.mode); err != nil {
		os.Remove(t.tmpPath)
		return coreerr.New(coreerr.IOError, "chmod", t.tmpPath, err)
	}
	if err := os.Rename(t.tmpPath, t.finalPath); err != nil {
		os.Remove(t.tmpPath)
		return coreerr.New(coreerr.IOError, "rename", t.finalPath, err)
	}
	return nil
}

// Abort discards the temp file. Safe to call after Commit (no-op).
func (t *TempFile) Abort() error {
	if t.done {
		return nil
	}
	t.done = true
	t.f.Close()
	return os.Remove(t.tmpPath)
}

// Lock is an exclusive-create ".lock" sibling of path. Acquiring it is
// how the index and refs serialize concurrent writers: a second Acquire
// on the same path fails with coreerr.LockContention until the first
// lock is committed or rolled back.
type Lock struct {
	path      string
	lockPath  string
	f         *os.File
	committed bool
}

// Acquire creates path+".lock" exclusively. It is the caller's
// responsibility to eventually call Commit or Rollback.
func Acquire(path string) (*Lock, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, coreerr.New(coreerr.IOError, "mkdir", dir, err)
	}

	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, coreerr.New(coreerr.LockContention, "acquire", lockPath, err)
		}
		return nil, coreerr.New(coreerr.IOError, "acquire", lockPath, err)
	}

	return &Lock{path: path, lockPath: lockPath, f: f}, nil
}

func (l *Lock) Write(p []byte) (int, error) {
	n, err := l.f.Write(p)
	if err != nil {
		return n, coreerr.New(coreerr.IOError, "write", l.lockPath, err)
	}
	return n, nil
}

// Commit fsyncs the lockfile and renames it onto path, publishing the
// new content atomically and releasing the lock in the same step.
func (l *Lock) Commit() error {
	if err := l.f.Sync(); err != nil {
		return coreerr.New(coreerr.IOError, "fsync", l.lockPath, err)
	}
	if err := l.f.Close(); err != nil {
		return coreerr.New(coreerr.IOError, "close", l.lockPath, err)
	}
	if err := os.Rename(l.lockPath, l.path); err != nil {
		return coreerr.New(coreerr.IOError, "rename", l.path, err)
	}
	l.committed = true
	return nil
}

// Rollback releases the lock without publishing anything. It only ever
// removes the lockfile, never the target path — "rename xor remove" —
// so a Commit racing with a Rollback from a different Lock instance can
// never destroy data the Commit just published.
func (l *Lock) Rollback() error {
	l.f.Close()
	if l.committed {
		return nil
	}
	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return coreerr.New(coreerr.IOError, "rollback", l.lockPath, err)
	}
	return nil
}

// ReadWriteLock is a Lock that also has a read-only handle on the
// pre-existing target, acquired after the lock so there's no window
// where another writer could swap the target out from under the read.
type ReadWriteLock struct {
	*Lock
	reader *os.File
}

// Upgrade opens path read-only, if it exists, while holding the lock.
// Exists() reports whether the target was present.
func (l *Lock) Upgrade() (*ReadWriteLock, error) {
	r, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ReadWriteLock{Lock: l}, nil
		}
		return nil, coreerr.New(coreerr.IOError, "open", l.path, err)
	}
	return &ReadWriteLock{Lock: l, reader: r}, nil
}

func (rw *ReadWriteLock) Exists() bool {
	return rw.reader != nil
}

func (rw *ReadWriteLock) Read(p []byte) (int, error) {
	if rw.reader == nil {
		return 0, coreerr.New(coreerr.NotFound, "read", rw.path, fmt.Errorf("target does not exist"))
	}
	return rw.reader.Read(p)
}

func (rw *ReadWriteLock) ReadAll() ([]byte, error) {
	if rw.reader == nil {
		return nil, nil
	}
	data, err := os.ReadFile(rw.path)
	if err != nil {
		return nil, coreerr.New(coreerr.IOError, "read", rw.path, err)
	}
	return data, nil
}

func (rw *ReadWriteLock) Rollback() error {
	if rw.reader != nil {
		rw.reader.Close()
	}
	return rw.Lock.Rollback()
}
