package newfs

import "errors"

// Package-specific error variables, checked with errors.Is, matching the
// semantic error kinds of the daemon-facing contract.
var (
	// ErrAccess names a permission failure. No function in this package
	// returns it: the drivers report open failures, permission errors
	// included, as ErrIO.
	ErrAccess = errors.New("newfs: access denied")

	// ErrSeek is returned when a driver seek fails.
	ErrSeek = errors.New("newfs: seek failed")

	// ErrIsDir is returned when an operation expecting a regular file hits a directory.
	ErrIsDir = errors.New("newfs: is a directory")

	// ErrNoSpace is returned when the inode bitmap or data bitmap is saturated,
	// or a file would grow past six data blocks.
	ErrNoSpace = errors.New("newfs: no space left on device")

	// ErrExists is returned when creating an entry that already exists.
	ErrExists = errors.New("newfs: file exists")

	// ErrNotFound is returned on failed path resolution or a missing dentry.
	ErrNotFound = errors.New("newfs: not found")

	// ErrUnsupported is returned (wrapped) by Export and Import when the
	// requested snapshot codec is not registered in this build.
	ErrUnsupported = errors.New("newfs: unsupported operation")

	// ErrIO is returned on any driver I/O failure.
	ErrIO = errors.New("newfs: i/o error")

	// ErrInval is returned on invalid arguments, including attempts to drop the root.
	ErrInval = errors.New("newfs: invalid argument")

	// ErrInvalidSuper names an unrecognized super block. Mount never
	// returns it: a magic-number mismatch makes Mount format the volume.
	ErrInvalidSuper = errors.New("newfs: invalid super block")

	// ErrNotMounted is returned by AllocInode, Mkdir, Create and Export when
	// the filesystem is not mounted (after Umount); other operations do not
	// check.
	ErrNotMounted = errors.New("newfs: filesystem not mounted")
)
