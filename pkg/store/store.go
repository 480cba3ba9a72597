// Package store implements the content-addressed object store: every
// blob, tree, and commit is written once under a path derived from its
// own hash, compressed with zlib to stay wire-compatible with a real
// git object database.
package store

import "github.com/go-grit/grit/pkg/objects"

// Store is the object database surface FileStore implements. The index
// depends only on its Put (index.TreeStore); repo and status use
// *FileStore directly.
type Store interface {
	// Put writes o if it isn't already present and returns its id.
	// Writing an object that already exists is a no-op, not an error.
	Put(o objects.Object) (objects.Id, error)
	// Get reads and decodes the object named by id.
	Get(id objects.Id) (objects.Object, error)
	// Has reports whether an object with id is already stored.
	Has(id objects.Id) (bool, error)
}
