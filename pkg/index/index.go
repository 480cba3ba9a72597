// Package index implements the staging area: a path-ordered map of
// Entry persisted in the DIRC v2 binary format git itself uses, guarded
// by the same lockfile discipline as refs.
package index

import (
	"sort"
	"strings"

	"github.com/go-grit/grit/pkg/atomicio"
	"github.com/go-grit/grit/pkg/common/logger"
	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/scpath"
)

// Index is the in-memory staging area. It is not safe for concurrent
// use by multiple goroutines.
type Index struct {
	entries map[scpath.RelativePath]*Entry
}

func newEmpty() *Index {
	return &Index{entries: make(map[scpath.RelativePath]*Entry)}
}

// path returns the on-disk location of the index file.
func path(repo scpath.RepositoryPath) string {
	return repo.GitPath().Join(scpath.IndexFile).String()
}

// Load reads and decodes the index file for read-only use (status,
// commit). It acquires and releases the lock for the duration of the
// read only — callers that intend to modify and persist the index
// should use Update instead, which holds the lock across the whole
// read-modify-write cycle.
func Load(repo scpath.RepositoryPath) (*Index, error) {
	p := path(repo)
	lock, err := atomicio.Acquire(p)
	if err != nil {
		return nil, err
	}
	defer lock.Rollback()

	return loadFromLock(lock, p)
}

func loadFromLock(lock *atomicio.Lock, p string) (*Index, error) {
	rw, err := lock.Upgrade()
	if err != nil {
		return nil, err
	}
	idx := newEmpty()
	if !rw.Exists() {
		return idx, nil
	}

	data, err := rw.ReadAll()
	if err != nil {
		return nil, err
	}

	entries, err := decode(data)
	if err != nil {
		return nil, coreerr.New(coreerr.Corrupt, "load_index", p, err)
	}
	for _, e := range entries {
		idx.entries[e.Path] = e
	}
	return idx, nil
}

// Update acquires the index lock, loads the current contents, lets fn
// mutate them, and persists the result under the same lock — a
// consistent read-modify-write against concurrent writers. If fn
// returns an error the lock is rolled back and nothing is written.
func Update(repo scpath.RepositoryPath, fn func(*Index) error) error {
	p := path(repo)
	lock, err := atomicio.Acquire(p)
	if err != nil {
		return err
	}

	idx, err := loadFromLock(lock, p)
	if err != nil {
		lock.Rollback()
		return err
	}

	if err := fn(idx); err != nil {
		lock.Rollback()
		return err
	}

	data, err := encode(idx.Entries())
	if err != nil {
		lock.Rollback()
		return err
	}
	if _, err := lock.Write(data); err != nil {
		lock.Rollback()
		return err
	}
	if err := lock.Commit(); err != nil {
		return err
	}

	logger.Info("index committed", "entries", idx.Len())
	return nil
}

// Add inserts e, resolving ancestor/descendant conflicts first: any
// existing entry that is now a directory component of e.Path is
// removed (it can no longer be a file), and any existing entry nested
// under e.Path is removed (e.Path can no longer be a directory).
// Entries unrelated to e.Path are left untouched.
func (idx *Index) Add(e *Entry) {
	comps := e.Path.Components()
	for i := 1; i < len(comps); i++ {
		ancestor := scpath.RelativePath(strings.Join(comps[:i], "/"))
		delete(idx.entries, ancestor)
	}

	prefix := string(e.Path) + "/"
	for p := range idx.entries {
		if strings.HasPrefix(string(p), prefix) {
			delete(idx.entries, p)
		}
	}

	idx.entries[e.Path] = e
}

// Remove deletes the entry at path, if present.
func (idx *Index) Remove(path scpath.RelativePath) {
	delete(idx.entries, path)
}

// Get returns the entry at path, if staged.
func (idx *Index) Get(path scpath.RelativePath) (*Entry, bool) {
	e, ok := idx.entries[path]
	return e, ok
}

// Entries returns every staged entry, sorted by path using byte-wise
// ordering — the same order the DIRC codec and the tree builder require.
func (idx *Index) Entries() []*Entry {
	out := make([]*Entry, 0, len(idx.entries))
	for _, e := range idx.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path.Less(out[j].Path)
	})
	return out
}

func (idx *Index) Len() int { return len(idx.entries) }
