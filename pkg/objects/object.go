package objects

import (
	"bytes"
	"fmt"
)

// Type is the tag stored in an object's header.
type Type string

const (
	TypeBlob   Type = "blob"
	TypeTree   Type = "tree"
	TypeCommit Type = "commit"
)

// Object is anything that can be hashed and stored: Blob, Tree, or Commit.
type Object interface {
	Type() Type
	// Encode returns the object's content, not including the
	// "<type> <len>\0" header — the store adds that before hashing.
	Encode() []byte
}

// ObjectId computes the object's id from its encoded content.
func ObjectId(o Object) Id {
	return HashObject(o.Type(), o.Encode())
}

// Decode parses raw content (without header) into the concrete object
// named by t.
func Decode(t Type, content []byte) (Object, error) {
	switch t {
	case TypeBlob:
		return NewBlob(content), nil
	case TypeTree:
		return DecodeTree(content)
	case TypeCommit:
		return DecodeCommit(content)
	default:
		return nil, fmt.Errorf("unknown object type %q", t)
	}
}

// SplitHeader parses the "<type> <len>\0<body>" envelope the store
// persists objects in, returning the type and the body with the header
// stripped.
func SplitHeader(data []byte) (Type, []byte, error) {
	nul := bytes.IndexByte(data, 0)
	if nul == -1 {
		return "", nil, fmt.Errorf("object missing header terminator")
	}
	header := data[:nul]
	sp := bytes.IndexByte(header, ' ')
	if sp == -1 {
		return "", nil, fmt.Errorf("object header missing type/size separator")
	}
	t := Type(header[:sp])
	var size int
	if _, err := fmt.Sscanf(string(header[sp+1:]), "%d", &size); err != nil {
		return "", nil, fmt.Errorf("object header has invalid size: %w", err)
	}
	body := data[nul+1:]
	if len(body) != size {
		return "", nil, fmt.Errorf("object size mismatch: header says %d, got %d", size, len(body))
	}
	switch t {
	case TypeBlob, TypeTree, TypeCommit:
		return t, body, nil
	default:
		return "", nil, fmt.Errorf("unknown object type %q", t)
	}
}
