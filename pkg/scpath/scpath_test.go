package scpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelativePathRejectsEscapes(t *testing.T) {
	_, err := NewRelativePath("../outside")
	require.Error(t, err)

	_, err = NewRelativePath("/abs/path")
	require.Error(t, err)

	p, err := NewRelativePath("./src/main.go")
	require.NoError(t, err)
	assert.Equal(t, RelativePath("src/main.go"), p)
}

func TestRelativePathAncestor(t *testing.T) {
	dir := RelativePath("src")
	assert.True(t, dir.IsAncestorOf("src/main.go"))
	assert.False(t, dir.IsAncestorOf("srcother/main.go"))
	assert.False(t, dir.IsAncestorOf("src"))
}

func TestRelativePathCompareIsByteWise(t *testing.T) {
	a := RelativePath("a.txt")
	b := RelativePath("a/file.txt")
	// byte-wise, '.' (0x2e) < '/' (0x2f), so "a.txt" sorts before "a/file.txt"
	assert.True(t, a.Less(b))
}

func TestRepositoryPathJoinRelative(t *testing.T) {
	root, err := NewRepositoryPath("/repo")
	require.NoError(t, err)
	abs := root.JoinRelative(RelativePath("src/main.go"))
	assert.Equal(t, AbsolutePath("/repo/src/main.go"), abs)
}
