// Package scpath provides the path types shared across the object store,
// index, working-tree walker, and status engine. It exists so none of
// those packages reach for raw strings and lose the byte-wise ordering
// guarantee the index and tree codecs depend on.
package scpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout constants for the on-disk repository metadata directory. The
// directory itself is named GitDir so the store stays wire-compatible
// with a real git checkout.
const (
	GitDir     = ".git"
	ObjectsDir = "objects"
	RefsDir    = "refs"
	HeadFile   = "HEAD"
	IndexFile  = "index"
	ConfigFile = "config.yaml"
)

// RepositoryPath is the absolute path to a repository's working directory
// (the directory containing GitDir, not GitDir itself).
type RepositoryPath string

// AbsolutePath is any absolute filesystem path.
type AbsolutePath string

// RelativePath is a path relative to the repository root, always stored
// with forward slashes and never starting with "./" or "/". Comparisons
// between RelativePaths must use byte-wise ordering (Compare/Less below),
// never the host path type's natural ordering, so that entry order is
// identical across platforms.
type RelativePath string

func NewRepositoryPath(path string) (RepositoryPath, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve repository path: %w", err)
	}
	return RepositoryPath(abs), nil
}

func (rp RepositoryPath) String() string { return string(rp) }

func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(rp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

func (rp RepositoryPath) GitPath() AbsolutePath {
	return rp.Join(GitDir)
}

func (rp RepositoryPath) JoinRelative(p RelativePath) AbsolutePath {
	if p == "" {
		return AbsolutePath(rp)
	}
	return AbsolutePath(filepath.Join(string(rp), filepath.FromSlash(string(p))))
}

func (ap AbsolutePath) String() string { return string(ap) }

func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

func (ap AbsolutePath) Dir() AbsolutePath  { return AbsolutePath(filepath.Dir(string(ap))) }
func (ap AbsolutePath) Base() string       { return filepath.Base(string(ap)) }

// RelativeTo computes the RelativePath of ap under root, normalized to
// forward slashes.
func (ap AbsolutePath) RelativeTo(root RepositoryPath) (RelativePath, error) {
	rel, err := filepath.Rel(string(root), string(ap))
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	return NewRelativePath(filepath.ToSlash(rel))
}

// NewRelativePath normalizes and validates a slash-separated relative path.
func NewRelativePath(path string) (RelativePath, error) {
	cleaned := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "./")
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("empty relative path")
	}
	if strings.HasPrefix(cleaned, "/") || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("path escapes repository root: %s", path)
	}
	return RelativePath(cleaned), nil
}

func (rp RelativePath) String() string { return string(rp) }

func (rp RelativePath) Components() []string {
	if rp == "" {
		return nil
	}
	return strings.Split(string(rp), "/")
}

func (rp RelativePath) Base() string {
	c := rp.Components()
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

func (rp RelativePath) Dir() RelativePath {
	c := rp.Components()
	if len(c) <= 1 {
		return ""
	}
	return RelativePath(strings.Join(c[:len(c)-1], "/"))
}

func (rp RelativePath) Join(child string) RelativePath {
	if rp == "" {
		return RelativePath(child)
	}
	return RelativePath(string(rp) + "/" + child)
}

// IsAncestorOf reports whether rp is a directory prefix of other, i.e.
// other == rp + "/" + something.
func (rp RelativePath) IsAncestorOf(other RelativePath) bool {
	return strings.HasPrefix(string(other), string(rp)+"/")
}

// Compare returns -1, 0, or 1 comparing rp to other using plain byte-wise
// ordering of the underlying UTF-8 bytes. Go's string comparison is
// already byte-wise, but this wrapper makes the intent explicit at call
// sites instead of relying on "<" reading correctly for path semantics.
func (rp RelativePath) Compare(other RelativePath) int {
	return strings.Compare(string(rp), string(other))
}

func (rp RelativePath) Less(other RelativePath) bool {
	return rp.Compare(other) < 0
}
