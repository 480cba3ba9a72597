package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-grit/grit/pkg/repo"
	"github.com/go-grit/grit/pkg/scpath"
)

// findRepository walks up from the current directory looking for a
// .git metadata directory, the way every subcommand except init
// resolves which repository it's operating on.
func findRepository() (*repo.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	for {
		if info, statErr := os.Stat(filepath.Join(dir, scpath.GitDir)); statErr == nil && info.IsDir() {
			return repo.Open(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("not a grit repository (or any parent up to root)")
		}
		dir = parent
	}
}
