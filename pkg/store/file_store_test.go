package store

import (
	"errors"
	"testing"

	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	root, err := scpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)
	return NewFileStore(root)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	blob := objects.NewBlob([]byte("hello world"))

	id, err := s.Put(blob)
	require.NoError(t, err)

	has, err := s.Has(id)
	require.NoError(t, err)
	assert.True(t, has)

	got, err := s.Get(id)
	require.NoError(t, err)
	gotBlob, ok := got.(*objects.Blob)
	require.True(t, ok)
	assert.Equal(t, []byte("hello world"), gotBlob.Data())
}

func TestPutIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	blob := objects.NewBlob([]byte("same content"))

	id1, err := s.Put(blob)
	require.NoError(t, err)
	id2, err := s.Put(blob)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(objects.Id{0xaa})
	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerr.NotFound))
}
