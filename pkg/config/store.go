package config

import (
	"os"

	"github.com/go-grit/grit/pkg/atomicio"
	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/scpath"
	"gopkg.in/yaml.v3"
)

// Store reads and writes a single level's YAML configuration file.
type Store struct {
	path  scpath.AbsolutePath
	level Level
}

func NewStore(path scpath.AbsolutePath, level Level) *Store {
	return &Store{path: path, level: level}
}

func (s *Store) Level() Level { return s.level }

func (s *Store) Path() scpath.AbsolutePath { return s.path }

// Load reads and parses the file, returning an empty File (not an
// error) when it doesn't exist yet — a level with no file simply
// contributes nothing to the resolved identity.
func (s *Store) Load() (File, error) {
	data, err := os.ReadFile(s.path.String())
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, coreerr.New(coreerr.IOError, "config_load", s.path.String(), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, coreerr.New(coreerr.Corrupt, "config_load", s.path.String(), err)
	}
	return f, nil
}

// Save serializes f and writes it atomically.
func (s *Store) Save(f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return coreerr.New(coreerr.Invariant, "config_save", s.path.String(), err)
	}

	tmp, err := atomicio.NewTempFile(s.path.String(), 0o644)
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Abort()
		return err
	}

	// A config file can be rewritten, unlike a content-addressed object,
	// so an existing file at this path must still be replaced rather
	// than treated as already-published. Remove it first so Commit's
	// exists-check doesn't mistake the stale version for success.
	if _, statErr := os.Stat(s.path.String()); statErr == nil {
		if err := os.Remove(s.path.String()); err != nil {
			tmp.Abort()
			return coreerr.New(coreerr.IOError, "config_save", s.path.String(), err)
		}
	}
	return tmp.Commit()
}
