package objects

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// TreeEntry is one line of a tree object: a name, the mode/type of what
// it points at, and that object's id.
type TreeEntry struct {
	Name string
	Mode FileMode
	Id   Id
}

// Tree is an ordered, git-compatible directory listing. Entries are kept
// sorted by name using the directory-suffix rule: a directory entry
// sorts as though its name had a trailing "/", so "foo.txt" sorts before
// a directory literally named "foo" would if compared as plain strings,
// matching what git's own tree writer does.
type Tree struct {
	entries []TreeEntry
}

// NewTree sorts entries (directory-suffix rule) and rejects duplicate
// names — a tree is a single directory listing, not a multimap.
func NewTree(entries []TreeEntry) (*Tree, error) {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return compareEntryNames(sorted[i], sorted[j]) < 0
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Name == sorted[i-1].Name {
			return nil, fmt.Errorf("duplicate tree entry name %q", sorted[i].Name)
		}
	}

	return &Tree{entries: sorted}, nil
}

func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Tree) Type() Type { return TypeTree }

func (t *Tree) Encode() []byte {
	var buf bytes.Buffer
	for _, e := range t.entries {
		buf.WriteString(e.Mode.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Id[:])
	}
	return buf.Bytes()
}

// DecodeTree parses the body of a serialized tree object.
func DecodeTree(content []byte) (*Tree, error) {
	var entries []TreeEntry
	rest := content
	for len(rest) > 0 {
		sp := bytes.IndexByte(rest, ' ')
		if sp == -1 {
			return nil, fmt.Errorf("malformed tree entry: missing mode separator")
		}
		modeStr := string(rest[:sp])
		rest = rest[sp+1:]

		nul := bytes.IndexByte(rest, 0)
		if nul == -1 {
			return nil, fmt.Errorf("malformed tree entry: missing name terminator")
		}
		name := string(rest[:nul])
		rest = rest[nul+1:]

		if len(rest) < 20 {
			return nil, fmt.Errorf("malformed tree entry: truncated id")
		}
		var id Id
		copy(id[:], rest[:20])
		rest = rest[20:]

		mode, err := ParseFileMode(modeStr)
		if err != nil {
			return nil, fmt.Errorf("tree entry %q: %w", name, err)
		}

		entries = append(entries, TreeEntry{Name: name, Mode: mode, Id: id})
	}

	return &Tree{entries: entries}, nil
}

func compareEntryNames(a, b TreeEntry) int {
	return strings.Compare(sortKey(a.Name, a.Mode.IsDirectory()), sortKey(b.Name, b.Mode.IsDirectory()))
}

func sortKey(name string, isDir bool) string {
	if isDir {
		return name + "/"
	}
	return name
}
