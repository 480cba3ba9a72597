package objects

// Blob holds the opaque bytes of a single tracked file. It carries no
// metadata of its own — name, mode, and permissions live one level up,
// on the tree entry that points at it.
type Blob struct {
	data []byte
}

func NewBlob(data []byte) *Blob {
	return &Blob{data: data}
}

func (b *Blob) Type() Type { return TypeBlob }

func (b *Blob) Encode() []byte { return b.data }

func (b *Blob) Data() []byte { return b.data }

func (b *Blob) Size() int { return len(b.data) }
