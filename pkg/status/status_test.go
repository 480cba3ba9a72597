package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-grit/grit/pkg/index"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/refs"
	"github.com/go-grit/grit/pkg/scpath"
	"github.com/go-grit/grit/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) scpath.RepositoryPath {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o755))
	root, err := scpath.NewRepositoryPath(dir)
	require.NoError(t, err)
	return root
}

func writeWorkFile(t *testing.T, root scpath.RepositoryPath, rel, content string) {
	t.Helper()
	abs := root.JoinRelative(mustRelative(t, rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs.String()), 0o755))
	require.NoError(t, os.WriteFile(abs.String(), []byte(content), 0o644))
}

func mustRelative(t *testing.T, p string) scpath.RelativePath {
	t.Helper()
	rp, err := scpath.NewRelativePath(p)
	require.NoError(t, err)
	return rp
}

func stageFile(t *testing.T, root scpath.RepositoryPath, s *store.FileStore, rel, content string) {
	t.Helper()
	id, err := s.Put(objects.NewBlob([]byte(content)))
	require.NoError(t, err)

	relPath := mustRelative(t, rel)
	abs := root.JoinRelative(relPath)
	err = index.Update(root, func(idx *index.Index) error {
		e, err := index.NewEntry(relPath, abs, id, objects.ModeRegular)
		if err != nil {
			return err
		}
		idx.Add(e)
		return nil
	})
	require.NoError(t, err)
}

func TestComputeReportsUntrackedFile(t *testing.T) {
	root := initRepo(t)
	writeWorkFile(t, root, "new.txt", "hello")

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Untracked, 1)
	assert.Equal(t, "new.txt", res.Untracked[0].Path.String())
	assert.False(t, res.Untracked[0].Dir)
	assert.Empty(t, res.Staged)
	assert.Empty(t, res.Unstaged)
}

func TestComputeReportsWholeUntrackedDirectory(t *testing.T) {
	root := initRepo(t)
	writeWorkFile(t, root, "vendor/lib/util.go", "package lib")

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Untracked, 1)
	assert.Equal(t, "vendor", res.Untracked[0].Path.String())
	assert.True(t, res.Untracked[0].Dir)
}

func TestComputeDescendsIntoPartiallyTrackedDirectory(t *testing.T) {
	root := initRepo(t)
	s := store.NewFileStore(root)
	writeWorkFile(t, root, "src/main.go", "package main")
	writeWorkFile(t, root, "src/scratch.go", "package main // wip")
	stageFile(t, root, s, "src/main.go", "package main")

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Untracked, 1)
	assert.Equal(t, "src/scratch.go", res.Untracked[0].Path.String())
	assert.False(t, res.Untracked[0].Dir)
}

func TestComputeReportsStagedAdd(t *testing.T) {
	root := initRepo(t)
	s := store.NewFileStore(root)
	writeWorkFile(t, root, "file.txt", "v1")
	stageFile(t, root, s, "file.txt", "v1")

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Staged, 1)
	assert.Equal(t, Added, res.Staged[0].Kind)
	assert.Empty(t, res.Unstaged)
	assert.Empty(t, res.Untracked)
}

func TestComputeReportsUnstagedModification(t *testing.T) {
	root := initRepo(t)
	s := store.NewFileStore(root)
	writeWorkFile(t, root, "file.txt", "v1")
	stageFile(t, root, s, "file.txt", "v1")

	writeWorkFile(t, root, "file.txt", "v2, different length")

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, Modified, res.Unstaged[0].Kind)
}

func TestComputeReportsUnstagedDeletion(t *testing.T) {
	root := initRepo(t)
	s := store.NewFileStore(root)
	writeWorkFile(t, root, "file.txt", "v1")
	stageFile(t, root, s, "file.txt", "v1")

	require.NoError(t, os.Remove(root.JoinRelative(mustRelative(t, "file.txt")).String()))

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, Deleted, res.Unstaged[0].Kind)
}

func TestComputeComparesAgainstHeadCommit(t *testing.T) {
	root := initRepo(t)
	s := store.NewFileStore(root)

	blobID, err := s.Put(objects.NewBlob([]byte("v1")))
	require.NoError(t, err)
	tree, err := objects.NewTree([]objects.TreeEntry{{Name: "file.txt", Mode: objects.ModeRegular, Id: blobID}})
	require.NoError(t, err)
	treeID, err := s.Put(tree)
	require.NoError(t, err)

	commit := &objects.Commit{
		Tree:      treeID,
		Author:    objects.Person{Name: "t", Email: "t@example.com"},
		Committer: objects.Person{Name: "t", Email: "t@example.com"},
		Message:   "initial\n",
	}
	commitID, err := s.Put(commit)
	require.NoError(t, err)
	require.NoError(t, refs.NewStore(root).SetHead(commitID))

	writeWorkFile(t, root, "file.txt", "v1")
	stageFile(t, root, s, "file.txt", "v1")

	res, err := Compute(root)
	require.NoError(t, err)
	assert.Empty(t, res.Staged)
	assert.True(t, res.Clean())
}

func TestComputeOnEmptyRepoIsClean(t *testing.T) {
	root := initRepo(t)
	res, err := Compute(root)
	require.NoError(t, err)
	assert.True(t, res.Clean())
}

func TestComputePrunesAllEmptyDirectoryTree(t *testing.T) {
	root := initRepo(t)
	require.NoError(t, os.MkdirAll(root.JoinRelative(mustRelative(t, "empty/sub")).String(), 0o755))

	res, err := Compute(root)
	require.NoError(t, err)
	assert.Empty(t, res.Untracked)
	assert.True(t, res.Clean())
}

func TestComputeReportsModeChangeWithoutContentChange(t *testing.T) {
	root := initRepo(t)
	s := store.NewFileStore(root)
	writeWorkFile(t, root, "run.sh", "echo hi")
	stageFile(t, root, s, "run.sh", "echo hi")

	abs := root.JoinRelative(mustRelative(t, "run.sh"))
	require.NoError(t, os.Chmod(abs.String(), 0o755))

	res, err := Compute(root)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, Modified, res.Unstaged[0].Kind)
}
