package index

import (
	"strings"

	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
)

// TreeStore is the subset of store.Store the tree builder needs — just
// enough to write the tree objects it constructs.
type TreeStore interface {
	Put(o objects.Object) (objects.Id, error)
}

// treeFrame accumulates the entries for one directory level while its
// descendants are still being visited.
type treeFrame struct {
	dir     scpath.RelativePath
	entries []objects.TreeEntry
}

// BuildTree walks the sorted, flat index entries and builds the nested
// tree objects they imply, storing each as it's completed and returning
// the id of the root. Because entries arrive path-sorted, a directory's
// entries are always contiguous, so a single pass with a stack of
// in-progress frames is enough: descending into a new directory pushes
// a frame, and returning to a shallower one pops and finalizes frames
// in post-order (children written before the parent that references
// them).
func BuildTree(store TreeStore, entries []*Entry) (objects.Id, error) {
	stack := []*treeFrame{{dir: ""}}

	finalize := func() error {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tr, err := objects.NewTree(top.entries)
		if err != nil {
			return err
		}
		id, err := store.Put(tr)
		if err != nil {
			return err
		}

		parent := stack[len(stack)-1]
		parent.entries = append(parent.entries, objects.TreeEntry{
			Name: top.dir.Base(),
			Mode: objects.ModeDirectory,
			Id:   id,
		})
		return nil
	}

	ascendTo := func(dir scpath.RelativePath) error {
		for len(stack) > 1 && !isAncestorOrEqual(stack[len(stack)-1].dir, dir) {
			if err := finalize(); err != nil {
				return err
			}
		}
		return nil
	}

	descendTo := func(dir scpath.RelativePath) {
		current := stack[len(stack)-1].dir
		if current == dir {
			return
		}
		full := dir.Components()
		skip := 0
		if current != "" {
			skip = len(current.Components())
		}

		built := string(current)
		for _, c := range full[skip:] {
			if built == "" {
				built = c
			} else {
				built = built + "/" + c
			}
			stack = append(stack, &treeFrame{dir: scpath.RelativePath(built)})
		}
	}

	for _, e := range entries {
		dir := e.Path.Dir()
		if err := ascendTo(dir); err != nil {
			return objects.Id{}, err
		}
		descendTo(dir)

		top := stack[len(stack)-1]
		top.entries = append(top.entries, objects.TreeEntry{
			Name: e.Path.Base(),
			Mode: e.Mode,
			Id:   e.Id,
		})
	}

	for len(stack) > 1 {
		if err := finalize(); err != nil {
			return objects.Id{}, err
		}
	}

	root := stack[0]
	tr, err := objects.NewTree(root.entries)
	if err != nil {
		return objects.Id{}, err
	}
	return store.Put(tr)
}

func isAncestorOrEqual(a, b scpath.RelativePath) bool {
	if a == b || a == "" {
		return true
	}
	return strings.HasPrefix(string(b), string(a)+"/")
}
