package index

import (
	"os"

	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
)

// Entry is one DIRC-format row: cached stat metadata plus the blob id a
// path was staged at. The metadata lets Status short-circuit a content
// hash when mode/size/mtime/ino all still match the working tree.
type Entry struct {
	CtimeSec, CtimeNsec uint32
	MtimeSec, MtimeNsec uint32
	Dev, Ino            uint32
	Mode                objects.FileMode
	Uid, Gid            uint32
	Size                uint32
	Id                  objects.Id
	Path                scpath.RelativePath
}

// NewEntry builds an Entry by stat-ing absPath on disk and pairing it
// with the blob id the caller has already stored.
func NewEntry(path scpath.RelativePath, absPath scpath.AbsolutePath, id objects.Id, mode objects.FileMode) (*Entry, error) {
	info, err := os.Lstat(absPath.String())
	if err != nil {
		return nil, err
	}

	dev, ino, uid, gid := extractSystemMetadata(info)
	mtime := info.ModTime()

	ctimeSec, ctimeNsec := statCtime(info)

	return &Entry{
		CtimeSec:  ctimeSec,
		CtimeNsec: ctimeNsec,
		MtimeSec:  uint32(mtime.Unix()),
		MtimeNsec: uint32(mtime.Nanosecond()),
		Dev:       dev,
		Ino:       ino,
		Mode:      mode,
		Uid:       uid,
		Gid:       gid,
		Size:      uint32(info.Size()),
		Id:        id,
		Path:      path,
	}, nil
}

// MetadataMatches reports whether the cached stat fields for e still
// match what's on disk now, without reading file content. Status uses
// this to avoid re-hashing unchanged files. A permission-bit change
// (regular <-> executable) always counts as a mismatch, since a mode
// change is a real modification even when size, mtime, and inode hold.
func (e *Entry) MetadataMatches(info os.FileInfo) bool {
	if ModeFromInfo(info) != e.Mode {
		return false
	}
	if uint32(info.Size()) != e.Size {
		return false
	}
	mtime := info.ModTime()
	if uint32(mtime.Unix()) != e.MtimeSec || uint32(mtime.Nanosecond()) != e.MtimeNsec {
		return false
	}
	_, ino, _, _ := extractSystemMetadata(info)
	if ino != 0 && e.Ino != 0 && ino != e.Ino {
		return false
	}
	return true
}

// ModeFromInfo derives the tree-entry mode for a regular file from its
// stat info: executable if any execute bit is set, regular otherwise.
func ModeFromInfo(info os.FileInfo) objects.FileMode {
	if info.Mode().Perm()&0o111 != 0 {
		return objects.ModeExecutable
	}
	return objects.ModeRegular
}
