// Package workdir walks the working tree, the filesystem side of the
// three-way comparison the status engine performs.
package workdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
)

// Entry describes one trackable file found in the working tree.
type Entry struct {
	Path scpath.RelativePath
	Abs  scpath.AbsolutePath
	Mode objects.FileMode
	Info os.FileInfo
}

// Walker reads the working tree rooted at a repository, skipping the
// metadata directory itself.
type Walker struct {
	root scpath.RepositoryPath
}

func NewWalker(root scpath.RepositoryPath) *Walker {
	return &Walker{root: root}
}

// List returns the immediate children of dir (use "" for the repository
// root), one Entry per regular file or directory. Directories are
// reported with ModeDirectory; callers that need their contents recurse
// with another List call or use Tree.
func (w *Walker) List(dir scpath.RelativePath) ([]Entry, error) {
	absDir := w.root.JoinRelative(dir)
	children, err := os.ReadDir(absDir.String())
	if err != nil {
		return nil, coreerr.New(coreerr.IOError, "list", absDir.String(), err)
	}

	var entries []Entry
	for _, c := range children {
		if isGitDir(dir, c.Name()) {
			continue
		}
		rel := joinRel(dir, c.Name())
		abs := w.root.JoinRelative(rel)

		e, err := w.entryFor(rel, abs, c)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path.Less(entries[j].Path) })
	return entries, nil
}

// Tree recursively walks the whole working tree, excluding the
// metadata directory, and returns every regular file found — never
// directories — sorted by path.
func (w *Walker) Tree() ([]Entry, error) {
	var entries []Entry

	rootStr := w.root.String()
	err := filepath.WalkDir(rootStr, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == rootStr {
			return nil
		}

		rel, relErr := scpath.AbsolutePath(p).RelativeTo(w.root)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if d.Name() == scpath.GitDir && filepath.Dir(p) == rootStr {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return coreerr.New(coreerr.IOError, "stat", p, err)
		}

		mode, typeErr := modeFor(info)
		if typeErr != nil {
			return typeErr
		}

		entries = append(entries, Entry{
			Path: rel,
			Abs:  scpath.AbsolutePath(p),
			Mode: mode,
			Info: info,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path.Less(entries[j].Path) })
	return entries, nil
}

// WalkPath resolves a single add target, which may name a file or a
// directory. A file yields one Entry; a directory yields every regular
// file beneath it (never the directory itself), sorted by path —
// mirroring how `grit add <path>` stages either one file or a whole
// subtree in one call.
func (w *Walker) WalkPath(rel scpath.RelativePath) ([]Entry, error) {
	abs := w.root.JoinRelative(rel)
	info, err := os.Lstat(abs.String())
	if err != nil {
		return nil, coreerr.New(coreerr.IOError, "stat", abs.String(), err)
	}

	if !info.IsDir() {
		mode, err := modeFor(info)
		if err != nil {
			return nil, err
		}
		return []Entry{{Path: rel, Abs: abs, Mode: mode, Info: info}}, nil
	}

	var entries []Entry
	err = filepath.WalkDir(abs.String(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isGitDir(rel, d.Name()) && filepath.Dir(p) == abs.String() {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}

		childRel, relErr := scpath.AbsolutePath(p).RelativeTo(w.root)
		if relErr != nil {
			return relErr
		}

		childInfo, err := d.Info()
		if err != nil {
			return coreerr.New(coreerr.IOError, "stat", p, err)
		}
		mode, err := modeFor(childInfo)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{Path: childRel, Abs: scpath.AbsolutePath(p), Mode: mode, Info: childInfo})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path.Less(entries[j].Path) })
	return entries, nil
}

func (w *Walker) entryFor(rel scpath.RelativePath, abs scpath.AbsolutePath, d os.DirEntry) (Entry, error) {
	info, err := d.Info()
	if err != nil {
		return Entry{}, coreerr.New(coreerr.IOError, "stat", abs.String(), err)
	}

	if d.IsDir() {
		return Entry{Path: rel, Abs: abs, Mode: objects.ModeDirectory, Info: info}, nil
	}

	mode, err := modeFor(info)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Path: rel, Abs: abs, Mode: mode, Info: info}, nil
}

func modeFor(info os.FileInfo) (objects.FileMode, error) {
	switch {
	case info.Mode().IsRegular():
		if info.Mode().Perm()&0o111 != 0 {
			return objects.ModeExecutable, nil
		}
		return objects.ModeRegular, nil
	default:
		return 0, coreerr.New(coreerr.UnsupportedFileType, "stat", "", nil)
	}
}

func isGitDir(dir scpath.RelativePath, name string) bool {
	return dir == "" && name == scpath.GitDir
}

func joinRel(dir scpath.RelativePath, name string) scpath.RelativePath {
	if dir == "" {
		return scpath.RelativePath(name)
	}
	return dir.Join(name)
}
