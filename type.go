package newfs

import "io/fs"

// FileType is the on-disk file-type tag carried by every inode and
// directory entry. NewFS enumerates the same three kinds as the original
// source (NEWFS_REG_FILE, NEWFS_DIR, NEWFS_SYM_LINK); symlinks are
// recognized by the type tag but never materialized by the core (§1
// Non-goals).
type FileType uint16

const (
	RegFile FileType = iota
	Dir
	Symlink
)

func (t FileType) String() string {
	switch t {
	case RegFile:
		return "RegFile"
	case Dir:
		return "Dir"
	case Symlink:
		return "Symlink"
	default:
		return "FileType(?)"
	}
}

func (t FileType) IsDir() bool {
	return t == Dir
}

func (t FileType) IsRegular() bool {
	return t == RegFile
}

func (t FileType) IsSymlink() bool {
	return t == Symlink
}

// Mode returns an fs.FileMode carrying only this type's bit, for callers
// building an io/fs-shaped view on top of the core.
func (t FileType) Mode() fs.FileMode {
	switch t {
	case Dir:
		return fs.ModeDir
	case Symlink:
		return fs.ModeSymlink
	default:
		return 0
	}
}
