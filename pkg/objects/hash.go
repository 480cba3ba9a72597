package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// Id is the 20-byte SHA-1 digest that names every object in the store.
type Id [20]byte

// ZeroId is the all-zero id. A missing parent is a nil Commit.Parent and
// a missing HEAD is a coreerr.NotFound error, not ZeroId.
var ZeroId Id

func (id Id) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id Id) String() string {
	return id.Hex()
}

func (id Id) IsZero() bool {
	return id == ZeroId
}

func (id Id) Short() string {
	h := id.Hex()
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

// ParseId decodes a 40-character hex string into an Id.
func ParseId(s string) (Id, error) {
	s = strings.TrimSpace(s)
	if len(s) != 40 {
		return Id{}, fmt.Errorf("object id must be 40 hex characters, got %d", len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Id{}, fmt.Errorf("decode object id: %w", err)
	}
	var id Id
	copy(id[:], raw)
	return id, nil
}

// HashObject computes the id of an object given its type and content,
// following the canonical "<type> <len>\0<body>" encoding every object
// is addressed by.
func HashObject(t Type, content []byte) Id {
	return sha1.Sum(Encode(t, content))
}

// Encode produces the canonical pre-compression byte representation of
// an object: "<type> <len>\0<body>".
func Encode(t Type, content []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", t, len(content))
	buf := make([]byte, 0, len(header)+len(content))
	buf = append(buf, header...)
	buf = append(buf, content...)
	return buf
}
