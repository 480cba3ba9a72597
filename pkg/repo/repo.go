// Package repo is the façade the command dispatcher drives: Init, Add,
// Commit, Status, and Show, each wiring together the object store,
// index, refs, working-tree walker, and status engine underneath.
package repo

import (
	"os"
	"time"

	"github.com/go-grit/grit/pkg/config"
	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/index"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/refs"
	"github.com/go-grit/grit/pkg/scpath"
	"github.com/go-grit/grit/pkg/status"
	"github.com/go-grit/grit/pkg/store"
	"github.com/go-grit/grit/pkg/workdir"
)

// Repository is the open handle a command operates against.
type Repository struct {
	root scpath.RepositoryPath
}

// Open resolves path to an absolute repository root without checking
// whether it's initialized — callers that need that guarantee should
// check store.NewFileStore(...).Has or look for the metadata directory
// themselves.
func Open(path string) (*Repository, error) {
	root, err := scpath.NewRepositoryPath(path)
	if err != nil {
		return nil, err
	}
	return &Repository{root: root}, nil
}

func (r *Repository) Root() scpath.RepositoryPath { return r.root }

// Init creates the metadata directory layout: objects/ (the content
// store) and refs/ (kept for git-compatible layout even though this
// engine resolves HEAD directly rather than walking symbolic refs).
func Init(path string) (*Repository, error) {
	root, err := scpath.NewRepositoryPath(path)
	if err != nil {
		return nil, err
	}

	gitPath := root.GitPath()
	for _, dir := range []string{scpath.ObjectsDir, scpath.RefsDir} {
		if err := os.MkdirAll(gitPath.Join(dir).String(), 0o755); err != nil {
			return nil, coreerr.New(coreerr.IOError, "init", gitPath.Join(dir).String(), err)
		}
	}

	return &Repository{root: root}, nil
}

// Add stages the files named by paths (repository-root-relative;
// a directory stages every regular file beneath it) in a single index
// transaction.
func (r *Repository) Add(paths []string) error {
	w := workdir.NewWalker(r.root)
	s := store.NewFileStore(r.root)

	var toStage []workdir.Entry
	for _, p := range paths {
		rel, err := scpath.NewRelativePath(p)
		if err != nil {
			return err
		}
		entries, err := w.WalkPath(rel)
		if err != nil {
			return err
		}
		toStage = append(toStage, entries...)
	}

	return index.Update(r.root, func(idx *index.Index) error {
		for _, e := range toStage {
			data, err := os.ReadFile(e.Abs.String())
			if err != nil {
				return coreerr.New(coreerr.IOError, "add", e.Abs.String(), err)
			}

			id, err := s.Put(objects.NewBlob(data))
			if err != nil {
				return err
			}

			entry, err := index.NewEntry(e.Path, e.Abs, id, e.Mode)
			if err != nil {
				return coreerr.New(coreerr.IOError, "add", e.Abs.String(), err)
			}
			idx.Add(entry)
		}
		return nil
	})
}

// CommitResult reports what Commit just published, enough for the
// dispatcher to print git's familiar "[<root-commit> short] summary".
type CommitResult struct {
	Id      objects.Id
	IsRoot  bool
	Summary string
}

// Commit snapshots the current index into a tree, wraps it in a commit
// object parented on HEAD (if any), and rotates HEAD to point at it.
func (r *Repository) Commit(message string) (*CommitResult, error) {
	idx, err := index.Load(r.root)
	if err != nil {
		return nil, err
	}

	s := store.NewFileStore(r.root)
	treeId, err := index.BuildTree(s, idx.Entries())
	if err != nil {
		return nil, err
	}

	headStore := refs.NewStore(r.root)
	var parent *objects.Id
	if head, err := headStore.Head(); err == nil {
		parent = &head
	} else if !coreerr.NotFound.Is(err) {
		return nil, err
	}

	identity, err := config.NewManager(r.root).Identity()
	if err != nil {
		return nil, err
	}
	person := objects.Person{Name: identity.Name, Email: identity.Email, When: time.Now()}

	commit := &objects.Commit{
		Tree:      treeId,
		Parent:    parent,
		Author:    person,
		Committer: person,
		Message:   message,
	}

	commitId, err := s.Put(commit)
	if err != nil {
		return nil, err
	}
	if err := headStore.SetHead(commitId); err != nil {
		return nil, err
	}

	return &CommitResult{Id: commitId, IsRoot: commit.IsRoot(), Summary: commit.Summary()}, nil
}

// Status runs the three-way status comparison.
func (r *Repository) Status() (*status.Result, error) {
	return status.Compute(r.root)
}

// TreeLine is one rendered line of Show's recursive listing.
type TreeLine struct {
	Mode objects.FileMode
	Id   objects.Id
	Path string
}

// Show lists every blob reachable from id (or, if id is empty, from
// HEAD's commit tree), depth-first, the way `git ls-tree -r` does.
// id may name a commit or a tree directly; a commit is resolved to its
// tree first.
func (r *Repository) Show(id *objects.Id) ([]TreeLine, error) {
	s := store.NewFileStore(r.root)

	treeId, err := r.resolveTreeId(s, id)
	if err != nil {
		return nil, err
	}

	var lines []TreeLine
	if err := walkShow(s, treeId, "", &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *Repository) resolveTreeId(s *store.FileStore, id *objects.Id) (objects.Id, error) {
	var target objects.Id
	if id != nil {
		target = *id
	} else {
		head, err := refs.NewStore(r.root).Head()
		if err != nil {
			return objects.Id{}, err
		}
		target = head
	}

	obj, err := s.Get(target)
	if err != nil {
		return objects.Id{}, err
	}
	switch o := obj.(type) {
	case *objects.Commit:
		return o.Tree, nil
	case *objects.Tree:
		return target, nil
	default:
		return objects.Id{}, coreerr.Fmt(coreerr.Invariant, "show", "object %s is neither a commit nor a tree", target.Hex())
	}
}

func walkShow(s *store.FileStore, id objects.Id, prefix string, out *[]TreeLine) error {
	obj, err := s.Get(id)
	if err != nil {
		return err
	}
	tree, ok := obj.(*objects.Tree)
	if !ok {
		return coreerr.New(coreerr.Corrupt, "show", "", nil)
	}

	for _, e := range tree.Entries() {
		path := e.Name
		if prefix != "" {
			path = prefix + "/" + e.Name
		}
		if e.Mode.IsDirectory() {
			if err := walkShow(s, e.Id, path, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, TreeLine{Mode: e.Mode, Id: e.Id, Path: path})
	}
	return nil
}
