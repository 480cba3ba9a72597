package index

import (
	"testing"

	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
	"github.com/go-grit/grit/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeNestsDirectories(t *testing.T) {
	root, err := scpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)
	s := store.NewFileStore(root)

	blobID, err := s.Put(objects.NewBlob([]byte("content")))
	require.NoError(t, err)

	idx := newEmpty()
	idx.Add(&Entry{Path: mustRel(t, "README.md"), Mode: objects.ModeRegular, Id: blobID})
	idx.Add(&Entry{Path: mustRel(t, "src/main.go"), Mode: objects.ModeRegular, Id: blobID})
	idx.Add(&Entry{Path: mustRel(t, "src/pkg/util.go"), Mode: objects.ModeRegular, Id: blobID})

	rootID, err := BuildTree(s, idx.Entries())
	require.NoError(t, err)

	rootObj, err := s.Get(rootID)
	require.NoError(t, err)
	rootTree := rootObj.(*objects.Tree)

	names := map[string]objects.TreeEntry{}
	for _, e := range rootTree.Entries() {
		names[e.Name] = e
	}
	require.Contains(t, names, "README.md")
	require.Contains(t, names, "src")
	assert.True(t, names["src"].Mode.IsDirectory())

	srcObj, err := s.Get(names["src"].Id)
	require.NoError(t, err)
	srcTree := srcObj.(*objects.Tree)

	srcNames := map[string]objects.TreeEntry{}
	for _, e := range srcTree.Entries() {
		srcNames[e.Name] = e
	}
	require.Contains(t, srcNames, "main.go")
	require.Contains(t, srcNames, "pkg")
	assert.True(t, srcNames["pkg"].Mode.IsDirectory())
}

func TestBuildTreeOfEmptyIndex(t *testing.T) {
	root, err := scpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)
	s := store.NewFileStore(root)

	id, err := BuildTree(s, nil)
	require.NoError(t, err)

	obj, err := s.Get(id)
	require.NoError(t, err)
	tree := obj.(*objects.Tree)
	assert.Empty(t, tree.Entries())
}

func mustRel(t *testing.T, p string) scpath.RelativePath {
	t.Helper()
	rp, err := scpath.NewRelativePath(p)
	require.NoError(t, err)
	return rp
}
