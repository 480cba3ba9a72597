package store

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"

	"github.com/go-grit/grit/pkg/atomicio"
	"github.com/go-grit/grit/pkg/common/logger"
	"github.com/go-grit/grit/pkg/coreerr"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
)

// FileStore is the on-disk object database rooted at <repo>/.git/objects.
type FileStore struct {
	root scpath.AbsolutePath
}

// NewFileStore builds a FileStore over the objects directory of repo.
// It does not create the directory — Init is responsible for that.
func NewFileStore(repo scpath.RepositoryPath) *FileStore {
	return &FileStore{root: repo.GitPath().Join(scpath.ObjectsDir)}
}

func (s *FileStore) pathFor(id objects.Id) string {
	hex := id.Hex()
	return s.root.Join(hex[:2], hex[2:]).String()
}

func (s *FileStore) Put(o objects.Object) (objects.Id, error) {
	id := objects.ObjectId(o)
	path := s.pathFor(id)

	if _, err := os.Stat(path); err == nil {
		logger.Debug("object already present", "id", id.Hex())
		return id, nil
	}

	raw := objects.Encode(o.Type(), o.Encode())

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(raw); err != nil {
		return objects.Id{}, coreerr.New(coreerr.IOError, "compress", path, err)
	}
	if err := w.Close(); err != nil {
		return objects.Id{}, coreerr.New(coreerr.IOError, "compress", path, err)
	}

	tmp, err := atomicio.NewTempFile(path, 0o444)
	if err != nil {
		return objects.Id{}, err
	}
	if _, err := tmp.Write(compressed.Bytes()); err != nil {
		tmp.Abort()
		return objects.Id{}, err
	}
	if err := tmp.Commit(); err != nil {
		return objects.Id{}, err
	}

	logger.Info("object written", "id", id.Hex(), "type", o.Type())
	return id, nil
}

func (s *FileStore) Get(id objects.Id) (objects.Object, error) {
	path := s.pathFor(id)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, coreerr.New(coreerr.NotFound, "get", path, err)
		}
		return nil, coreerr.New(coreerr.IOError, "get", path, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, coreerr.New(coreerr.Corrupt, "get", path, fmt.Errorf("zlib header: %w", err))
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, coreerr.New(coreerr.Corrupt, "get", path, fmt.Errorf("zlib stream: %w", err))
	}

	t, content, err := objects.SplitHeader(raw)
	if err != nil {
		return nil, coreerr.New(coreerr.Corrupt, "get", path, err)
	}

	obj, err := objects.Decode(t, content)
	if err != nil {
		return nil, coreerr.New(coreerr.Corrupt, "get", path, err)
	}

	return obj, nil
}

func (s *FileStore) Has(id objects.Id) (bool, error) {
	_, err := os.Stat(s.pathFor(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, coreerr.New(coreerr.IOError, "has", s.pathFor(id), err)
}
