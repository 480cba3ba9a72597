// Package status implements the three-way reconciliation between HEAD's
// tree, the staging index, and the working tree.
package status

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/index"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/refs"
	"github.com/go-grit/grit/pkg/scpath"
	"github.com/go-grit/grit/pkg/store"
	"github.com/go-grit/grit/pkg/workdir"
)

// ChangeKind classifies one path's difference between two snapshots.
type ChangeKind int

const (
	Added ChangeKind = iota
	Modified
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is a single path's status relative to a comparison baseline.
type Change struct {
	Path scpath.RelativePath
	Kind ChangeKind
}

// Untracked is a path the working tree has that the index does not.
// Dir is set when the whole directory is untracked (no descendant of it
// is staged), matching git's habit of reporting "dir/" instead of every
// file beneath it.
type Untracked struct {
	Path scpath.RelativePath
	Dir  bool
}

// Result is the full, path-ordered status report.
type Result struct {
	Staged    []Change    // index vs HEAD
	Unstaged  []Change    // working tree vs index
	Untracked []Untracked // working tree paths absent from the index
}

func (r *Result) Clean() bool {
	return len(r.Staged) == 0 && len(r.Unstaged) == 0 && len(r.Untracked) == 0
}

type treeLeaf struct {
	id   objects.Id
	mode objects.FileMode
}

// Compute runs the full three-way comparison for repo.
func Compute(repo scpath.RepositoryPath) (*Result, error) {
	s := store.NewFileStore(repo)

	headFiles, err := headTreeFiles(s, repo)
	if err != nil {
		return nil, err
	}

	idx, err := index.Load(repo)
	if err != nil {
		return nil, err
	}

	staged := compareIndexToHead(idx, headFiles)

	unstaged, err := compareWorkToIndex(repo, idx)
	if err != nil {
		return nil, err
	}

	untracked, err := findUntracked(repo, idx)
	if err != nil {
		return nil, err
	}

	return &Result{Staged: staged, Unstaged: unstaged, Untracked: untracked}, nil
}

// headTreeFiles flattens the tree of the commit HEAD points at into a
// flat path -> (id, mode) map. A missing HEAD (no commits yet) is not
// an error — it simply means every staged path is new.
func headTreeFiles(s *store.FileStore, repo scpath.RepositoryPath) (map[scpath.RelativePath]treeLeaf, error) {
	out := map[scpath.RelativePath]treeLeaf{}

	head, err := refs.NewStore(repo).Head()
	if err != nil {
		if errors.Is(err, coreerr.NotFound) {
			return out, nil
		}
		return nil, err
	}

	commitObj, err := s.Get(head)
	if err != nil {
		return nil, err
	}
	commit, ok := commitObj.(*objects.Commit)
	if !ok {
		return nil, coreerr.New(coreerr.Corrupt, "status", "", nil)
	}

	if err := flattenTree(s, commit.Tree, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenTree(s *store.FileStore, id objects.Id, prefix scpath.RelativePath, out map[scpath.RelativePath]treeLeaf) error {
	obj, err := s.Get(id)
	if err != nil {
		return err
	}
	tree, ok := obj.(*objects.Tree)
	if !ok {
		return coreerr.New(coreerr.Corrupt, "status", "", nil)
	}

	for _, e := range tree.Entries() {
		path := prefix.Join(e.Name)
		if e.Mode.IsDirectory() {
			if err := flattenTree(s, e.Id, path, out); err != nil {
				return err
			}
			continue
		}
		out[path] = treeLeaf{id: e.Id, mode: e.Mode}
	}
	return nil
}

// compareIndexToHead produces the staged change set: every index entry
// not in HEAD is Added, every one whose id differs from HEAD's is
// Modified, and every HEAD path no longer in the index is Deleted.
func compareIndexToHead(idx *index.Index, head map[scpath.RelativePath]treeLeaf) []Change {
	seen := make(map[scpath.RelativePath]bool, len(head))
	var changes []Change

	for _, e := range idx.Entries() {
		leaf, ok := head[e.Path]
		seen[e.Path] = true
		switch {
		case !ok:
			changes = append(changes, Change{Path: e.Path, Kind: Added})
		case leaf.id != e.Id || leaf.mode != e.Mode:
			changes = append(changes, Change{Path: e.Path, Kind: Modified})
		}
	}

	var deletedPaths []scpath.RelativePath
	for path := range head {
		if !seen[path] {
			deletedPaths = append(deletedPaths, path)
		}
	}
	sort.Slice(deletedPaths, func(i, j int) bool { return deletedPaths[i].Less(deletedPaths[j]) })
	for _, p := range deletedPaths {
		changes = append(changes, Change{Path: p, Kind: Deleted})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path.Less(changes[j].Path) })
	return changes
}

// compareWorkToIndex produces the unstaged change set: index entries
// missing from disk are Deleted, and present files whose content has
// changed are Modified. The cached stat metadata on the index entry is
// checked first so unchanged files never need a content hash.
func compareWorkToIndex(repo scpath.RepositoryPath, idx *index.Index) ([]Change, error) {
	var changes []Change

	for _, e := range idx.Entries() {
		abs := repo.JoinRelative(e.Path)
		info, err := os.Lstat(abs.String())
		if err != nil {
			if os.IsNotExist(err) {
				changes = append(changes, Change{Path: e.Path, Kind: Deleted})
				continue
			}
			return nil, coreerr.New(coreerr.IOError, "status", abs.String(), err)
		}

		if e.MetadataMatches(info) {
			continue
		}

		if index.ModeFromInfo(info) != e.Mode {
			changes = append(changes, Change{Path: e.Path, Kind: Modified})
			continue
		}

		changed, err := contentDiffers(abs.String(), e.Id)
		if err != nil {
			return nil, err
		}
		if changed {
			changes = append(changes, Change{Path: e.Path, Kind: Modified})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path.Less(changes[j].Path) })
	return changes, nil
}

func contentDiffers(absPath string, staged objects.Id) (bool, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return false, coreerr.New(coreerr.IOError, "status", absPath, err)
	}
	id := objects.HashObject(objects.TypeBlob, data)
	return id != staged, nil
}

// findUntracked walks the working tree depth-first. A directory with no
// trackable (untracked) file anywhere beneath it — because it's empty or
// everything in it is already staged — is pruned entirely and never
// reported. A directory that is trackable and has no tracked descendant
// at all is reported whole, as "dir/", the moment that's known (short-
// circuiting further recursion there, the same shape the original status
// command used); otherwise it's mixed and gets recursed into to report
// individual untracked files and subdirectories.
func findUntracked(repo scpath.RepositoryPath, idx *index.Index) ([]Untracked, error) {
	w := workdir.NewWalker(repo)
	var out []Untracked

	var walk func(dir scpath.RelativePath) error
	walk = func(dir scpath.RelativePath) error {
		children, err := w.List(dir)
		if err != nil {
			return err
		}
		for _, c := range children {
			if c.Mode.IsDirectory() {
				trackable, err := isTrackable(w, idx, c.Path)
				if err != nil {
					return err
				}
				if !trackable {
					continue
				}
				if !hasTrackedDescendant(idx, c.Path) {
					out = append(out, Untracked{Path: c.Path, Dir: true})
					continue
				}
				if err := walk(c.Path); err != nil {
					return err
				}
				continue
			}

			if _, tracked := idx.Get(c.Path); !tracked {
				out = append(out, Untracked{Path: c.Path})
			}
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path.Less(out[j].Path) })
	return out, nil
}

// isTrackable reports whether dir contains, anywhere beneath it, at
// least one untracked file — mirroring the original status command's
// is_trackable: a file is trackable iff it isn't in the index, and a
// directory is trackable iff any descendant is, recursing depth-first
// and stopping at the first trackable file found.
func isTrackable(w *workdir.Walker, idx *index.Index, dir scpath.RelativePath) (bool, error) {
	children, err := w.List(dir)
	if err != nil {
		return false, err
	}
	for _, c := range children {
		if c.Mode.IsDirectory() {
			trackable, err := isTrackable(w, idx, c.Path)
			if err != nil {
				return false, err
			}
			if trackable {
				return true, nil
			}
			continue
		}
		if _, tracked := idx.Get(c.Path); !tracked {
			return true, nil
		}
	}
	return false, nil
}

func hasTrackedDescendant(idx *index.Index, dir scpath.RelativePath) bool {
	prefix := string(dir) + "/"
	for _, e := range idx.Entries() {
		if strings.HasPrefix(string(e.Path), prefix) {
			return true
		}
	}
	return false
}
