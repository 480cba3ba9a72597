//go:build windows

package index

import (
	"os"
)

// extractSystemMetadata extracts platform-specific file system metadata.
// Windows doesn't expose device/inode the way POSIX does; git on Windows
// also leaves these zeroed.
func extractSystemMetadata(info os.FileInfo) (dev, ino, uid, gid uint32) {
	return 0, 0, 0, 0
}

// statCtime has no POSIX-style inode change time on Windows; fall back
// to the same value mtime would give so the entry's ctime fields still
// hold a stable value.
func statCtime(info os.FileInfo) (sec, nsec uint32) {
	mtime := info.ModTime()
	return uint32(mtime.Unix()), uint32(mtime.Nanosecond())
}
