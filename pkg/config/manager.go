// Package config resolves the engine's one piece of persistent
// configuration — commit author identity — from a three-level
// hierarchy of YAML files, the same system/user/repository precedence
// scheme real git uses for its much larger config surface.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-grit/grit/pkg/scpath"
)

const (
	windowsSystemDir = `C:\ProgramData\grit`
	unixSystemDir    = "/etc/grit"
)

// Manager resolves and edits identity configuration for one repository.
type Manager struct {
	repo   scpath.RepositoryPath
	system *Store
	user   *Store
	stores map[Level]*Store
}

func NewManager(repo scpath.RepositoryPath) *Manager {
	return newManager(repo, systemConfigPath(), userConfigPath())
}

func newManager(repo scpath.RepositoryPath, systemPath, userPath scpath.AbsolutePath) *Manager {
	system := NewStore(systemPath, SystemLevel)
	user := NewStore(userPath, UserLevel)
	repository := NewStore(repo.GitPath().Join(scpath.ConfigFile), RepositoryLevel)

	return &Manager{
		repo:   repo,
		system: system,
		user:   user,
		stores: map[Level]*Store{
			SystemLevel:     system,
			UserLevel:       user,
			RepositoryLevel: repository,
		},
	}
}

func systemConfigPath() scpath.AbsolutePath {
	if runtime.GOOS == "windows" {
		return scpath.AbsolutePath(filepath.Join(windowsSystemDir, "config.yaml"))
	}
	return scpath.AbsolutePath(filepath.Join(unixSystemDir, "config.yaml"))
}

func userConfigPath() scpath.AbsolutePath {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return scpath.AbsolutePath(filepath.Join(home, ".config", "grit", "config.yaml"))
}

// Identity resolves the effective author identity, letting the
// repository level override the user level override the system level.
// It errors if the merged result still has an empty name or email.
func (m *Manager) Identity() (Identity, error) {
	var resolved Identity
	for _, level := range []Level{SystemLevel, UserLevel, RepositoryLevel} {
		f, err := m.stores[level].Load()
		if err != nil {
			return Identity{}, err
		}
		resolved = resolved.merge(f.User)
	}

	if !resolved.complete() {
		return Identity{}, ErrNoIdentity
	}
	return resolved, nil
}

// Set writes name/email fields into the store at level, preserving
// whichever field isn't being set.
func (m *Manager) Set(level Level, name, email string) error {
	store := m.stores[level]
	f, err := store.Load()
	if err != nil {
		return err
	}
	if name != "" {
		f.User.Name = name
	}
	if email != "" {
		f.User.Email = email
	}
	return store.Save(f)
}
