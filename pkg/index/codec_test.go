package index

import (
	"testing"

	"github.com/go-grit/grit/pkg/objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	idx := newEmpty()
	idx.Add(entryAt(t, "a.txt"))
	idx.Add(entryAt(t, "dir/b.txt"))
	e3 := entryAt(t, "dir/executable.sh")
	e3.Mode = objects.ModeExecutable
	e3.Size = 42
	idx.Add(e3)

	data, err := encode(idx.Entries())
	require.NoError(t, err)

	decoded, err := decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	for i, e := range idx.Entries() {
		assert.Equal(t, e.Path, decoded[i].Path)
		assert.Equal(t, e.Mode, decoded[i].Mode)
		assert.Equal(t, e.Size, decoded[i].Size)
		assert.Equal(t, e.Id, decoded[i].Id)
	}
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	idx := newEmpty()
	idx.Add(entryAt(t, "a.txt"))

	data, err := encode(idx.Entries())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF

	_, err = decode(data)
	assert.Error(t, err)
}
