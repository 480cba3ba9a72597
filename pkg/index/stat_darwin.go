//go:build darwin

package index

import (
	"os"
	"syscall"
)

// extractSystemMetadata extracts platform-specific file system metadata.
func extractSystemMetadata(info os.FileInfo) (dev, ino, uid, gid uint32) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint32(stat.Dev),
			uint32(stat.Ino),
			uint32(stat.Uid),
			uint32(stat.Gid)
	}
	return 0, 0, 0, 0
}

// statCtime extracts the inode change time. Darwin's Stat_t names the
// field Ctimespec instead of Linux's Ctim.
func statCtime(info os.FileInfo) (sec, nsec uint32) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint32(stat.Ctimespec.Sec), uint32(stat.Ctimespec.Nsec)
	}
	return 0, 0
}
