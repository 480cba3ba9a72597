// Package refs manages HEAD: the single reference pointing at the
// current commit.
package refs

import (
	"strings"

	"github.com/go-grit/grit/pkg/atomicio"
	"github.com/go-grit/grit/pkg/common/logger"
	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
)

// Store reads and writes HEAD under <repo>/.git/HEAD.
type Store struct {
	path string
}

func NewStore(repo scpath.RepositoryPath) *Store {
	return &Store{path: repo.GitPath().Join(scpath.HeadFile).String()}
}

// Head returns the commit id HEAD points at, or coreerr.NotFound if
// there have been no commits yet.
func (s *Store) Head() (objects.Id, error) {
	lock, err := atomicio.Acquire(s.path)
	if err != nil {
		return objects.Id{}, err
	}
	defer lock.Rollback()

	rw, err := lock.Upgrade()
	if err != nil {
		return objects.Id{}, err
	}
	if !rw.Exists() {
		return objects.Id{}, coreerr.New(coreerr.NotFound, "head", s.path, nil)
	}

	data, err := rw.ReadAll()
	if err != nil {
		return objects.Id{}, err
	}

	id, err := objects.ParseId(strings.TrimSpace(string(data)))
	if err != nil {
		return objects.Id{}, coreerr.New(coreerr.Corrupt, "head", s.path, err)
	}
	return id, nil
}

// SetHead atomically points HEAD at id.
func (s *Store) SetHead(id objects.Id) error {
	lock, err := atomicio.Acquire(s.path)
	if err != nil {
		return err
	}

	if _, err := lock.Write([]byte(id.Hex())); err != nil {
		lock.Rollback()
		return err
	}

	if err := lock.Commit(); err != nil {
		return err
	}

	logger.Info("HEAD rotated", "id", id.Hex())
	return nil
}
