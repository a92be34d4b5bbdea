package newfs

import (
	"bytes"
	"io"
	"io/fs"
	"time"
)

// Ensure the adapter types satisfy the standard io/fs interfaces, the
// same shape the teacher's file.go exposes over its own read-only
// SquashFS inode.
var (
	_ fs.FS          = (*FS)(nil)
	_ fs.File        = (*ioFile)(nil)
	_ fs.ReadDirFile = (*ioDir)(nil)
	_ fs.FileInfo    = (*ioFileInfo)(nil)
)

// Open implements fs.FS so a mounted filesystem can be driven by any
// code written against io/fs (fs.ReadFile, fs.WalkDir, fs.Glob, ...).
// name follows io/fs's own convention (unrooted, "." for the tree
// root) rather than Lookup's absolute-path convention.
//
// Grounded in the teacher's file.go (Inode.OpenFile / File / FileDir),
// adapted from SquashFS's read-only metadata-table-backed inode onto
// NewFS's in-memory dentry tree.
func (fsys *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	p := "/" + name
	if name == "." {
		p = "/"
	}

	dentry, found, isRoot := fsys.Lookup(p)
	if !found && !isRoot {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if dentry.inode == nil {
		if _, err := fsys.ReadInode(dentry, dentry.Ino); err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: err}
		}
	}

	if dentry.inode.Type == Dir {
		return &ioDir{fsys: fsys, dentry: dentry}, nil
	}

	data, err := fsys.ReadFile(dentry)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &ioFile{dentry: dentry, r: bytes.NewReader(data)}, nil
}

// ioFile implements fs.File for a regular file's dentry.
type ioFile struct {
	dentry *Dentry
	r      *bytes.Reader
}

func (f *ioFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *ioFile) Close() error                { return nil }
func (f *ioFile) Stat() (fs.FileInfo, error) {
	return &ioFileInfo{dentry: f.dentry}, nil
}

// ioDir implements fs.ReadDirFile for a directory's dentry.
type ioDir struct {
	fsys    *FS
	dentry  *Dentry
	entries []Dentry
	pos     int
}

func (d *ioDir) Read(p []byte) (int, error) { return 0, fs.ErrInvalid }
func (d *ioDir) Close() error                { return nil }
func (d *ioDir) Stat() (fs.FileInfo, error) {
	return &ioFileInfo{dentry: d.dentry}, nil
}

func (d *ioDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if d.entries == nil {
		entries, err := d.fsys.ReadDir(d.dentry)
		if err != nil {
			return nil, err
		}
		d.entries = entries
	}

	var out []fs.DirEntry
	for d.pos < len(d.entries) {
		e := d.entries[d.pos]
		d.pos++
		out = append(out, &ioDirEntry{e})
		if n > 0 && len(out) >= n {
			return out, nil
		}
	}
	if n > 0 && len(out) == 0 {
		return nil, io.EOF
	}
	return out, nil
}

// ioDirEntry implements fs.DirEntry for a materialized child Dentry.
type ioDirEntry struct {
	d Dentry
}

func (e *ioDirEntry) Name() string              { return e.d.Name }
func (e *ioDirEntry) IsDir() bool               { return e.d.Type == Dir }
func (e *ioDirEntry) Type() fs.FileMode         { return e.d.Type.Mode() }
func (e *ioDirEntry) Info() (fs.FileInfo, error) { return &ioFileInfo{dentry: &e.d}, nil }

// ioFileInfo implements fs.FileInfo for a dentry/inode pair.
type ioFileInfo struct {
	dentry *Dentry
}

func (fi *ioFileInfo) Name() string { return fi.dentry.Name }
func (fi *ioFileInfo) Size() int64 {
	if fi.dentry.inode == nil {
		return 0
	}
	return int64(fi.dentry.inode.Size)
}
func (fi *ioFileInfo) Mode() fs.FileMode    { return fi.dentry.Type.Mode() | DefaultPerm }
func (fi *ioFileInfo) ModTime() time.Time   { return time.Time{} }
func (fi *ioFileInfo) IsDir() bool          { return fi.dentry.Type == Dir }
func (fi *ioFileInfo) Sys() any             { return fi.dentry.inode }
