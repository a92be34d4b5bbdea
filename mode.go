package newfs

import (
	"io/fs"
)

// Unix mode bits for the three file kinds NewFS's type enum actually
// has (type.go's RegFile/Dir/Symlink) -- DefaultPerm is used uniformly
// since NewFS has no permission model of its own. ModeToUnix exists for
// daemons presenting the tree over a real POSIX surface (fuse.go's
// FillAttr). Based on: https://golang.org/src/os/stat_linux.go

const (
	S_IFMT  = 0xf000
	S_IFREG = 0x8000
	S_IFDIR = 0x4000
	S_IFLNK = 0xa000

	S_ISVTX = 0x200
	S_ISGID = 0x400
	S_ISUID = 0x800

	S_IRUSR = 0x100
	S_IRGRP = 0x20
	S_IROTH = 0x4

	S_IWUSR = 0x80
	S_IWGRP = 0x10
	S_IWOTH = 0x2

	S_IXUSR = 0x40
	S_IXGRP = 0x8
	S_IXOTH = 0x1
)

func ModeToUnix(mode fs.FileMode) uint32 {
	res := uint32(mode.Perm())

	// type of file
	switch {
	case mode&fs.ModeDir == fs.ModeDir:
		res |= S_IFDIR
	case mode&fs.ModeSymlink == fs.ModeSymlink:
		res |= S_IFLNK
	default:
		res |= S_IFREG
	}

	// extra flags
	if mode&fs.ModeSetgid == fs.ModeSetgid {
		res |= S_ISGID
	}

	if mode&fs.ModeSetuid == fs.ModeSetuid {
		res |= S_ISUID
	}

	if mode&fs.ModeSticky == fs.ModeSticky {
		res |= S_ISVTX
	}

	return res
}
