package newfs

import "path"

// The functions in this file are the thin composition layer §4.10
// describes as driving "Lookup/AllocInode/AllocDentry/block I/O
// directly" -- a minimal single-shot daemon surface for cmd/newfsctl and
// for tests, not a POSIX dispatch loop. Each one is built out of the
// primitives in inode.go and resolver.go and none touches the codec
// layer directly; WriteFile is the one that allocates from a bitmap
// itself (the data blocks a file grows into).

// Mkdir creates a new, empty directory at path, whose parent must
// already exist and must itself be a directory. Returns ErrExists if an
// entry with the final component's name is already present (matched the
// same prefix-length way Lookup matches), ErrNotFound if the parent
// doesn't resolve, and ErrInval if the parent resolves to something
// other than a directory.
func (fs *FS) Mkdir(p string) (*Dentry, error) {
	return fs.create(p, Dir)
}

// Create creates a new, empty regular file at path, under the same
// rules as Mkdir.
func (fs *FS) Create(p string) (*Dentry, error) {
	return fs.create(p, RegFile)
}

func (fs *FS) create(p string, typ FileType) (*Dentry, error) {
	if !fs.mounted {
		return nil, ErrNotMounted
	}

	parentPath, name := path.Split(path.Clean(p))
	if name == "" {
		return nil, ErrInval
	}
	if parentPath == "" {
		parentPath = "/"
	}

	parentDentry, found, _ := fs.Lookup(parentPath)
	if !found && parentPath != "/" {
		return nil, ErrNotFound
	}
	if parentDentry.inode == nil {
		if _, err := fs.ReadInode(parentDentry, parentDentry.Ino); err != nil {
			return nil, err
		}
	}
	parent := parentDentry.inode
	if parent.Type != Dir {
		return nil, ErrInval
	}

	if _, hit := matchChild(parent, name); hit {
		return nil, ErrExists
	}

	child := NewDentry(name, typ)
	if _, err := fs.AllocInode(child); err != nil {
		return nil, err
	}
	if err := fs.AllocDentry(parent, child); err != nil {
		return nil, err
	}
	return child, nil
}

// ReadDir returns the names and types of dir's immediate children, in
// child-list order. New entries are prepended (most recently created
// first); a directory read back from disk by ReadInode lists its entries
// in the reverse of their on-disk order.
func (fs *FS) ReadDir(dir *Dentry) ([]Dentry, error) {
	if dir.inode == nil {
		if _, err := fs.ReadInode(dir, dir.Ino); err != nil {
			return nil, err
		}
	}
	if dir.inode.Type != Dir {
		return nil, ErrInval
	}
	entries := make([]Dentry, 0, dir.inode.DirCount)
	for c := dir.inode.children; c != nil; c = c.sibling {
		entries = append(entries, *c)
	}
	return entries, nil
}

// ReadFile returns the full in-memory content of a regular file's
// dentry, up to its recorded Size, materializing the inode if needed.
func (fs *FS) ReadFile(fileDentry *Dentry) ([]byte, error) {
	if fileDentry.inode == nil {
		if _, err := fs.ReadInode(fileDentry, fileDentry.Ino); err != nil {
			return nil, err
		}
	}
	inode := fileDentry.inode
	if inode.Type != RegFile {
		return nil, ErrIsDir
	}

	out := make([]byte, 0, inode.Size)
	remaining := inode.Size
	for b := 0; b < DataBlocksPerFile && remaining > 0; b++ {
		block := inode.data[b]
		if block == nil {
			break
		}
		n := uint64(len(block))
		if n > remaining {
			n = remaining
		}
		out = append(out, block[:n]...)
		remaining -= n
	}
	return out, nil
}

// WriteFile overwrites a regular file's content with data, truncating
// or growing as needed up to DataBlocksPerFile blocks. Returns
// ErrNoSpace if data would need more than DataBlocksPerFile blocks.
func (fs *FS) WriteFile(fileDentry *Dentry, data []byte) error {
	if fileDentry.inode == nil {
		if _, err := fs.ReadInode(fileDentry, fileDentry.Ino); err != nil {
			return err
		}
	}
	inode := fileDentry.inode
	if inode.Type != RegFile {
		return ErrIsDir
	}

	blockSize := fs.g.blockSize
	needed := (len(data) + blockSize - 1) / blockSize
	if needed == 0 {
		needed = 1
	}
	if needed > DataBlocksPerFile {
		return ErrNoSpace
	}

	for b := 0; b < needed; b++ {
		if inode.BlockPointer[b] == 0 && b >= inode.AllocatedBlocks {
			dno, err := fs.dataBitmap.allocate()
			if err != nil {
				return err
			}
			inode.BlockPointer[b] = uint32(dno)
		}
		if inode.data[b] == nil {
			inode.data[b] = make([]byte, blockSize)
		}
		start := b * blockSize
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		buf := inode.data[b]
		for i := range buf {
			buf[i] = 0
		}
		if start < end {
			copy(buf, data[start:end])
		}
	}
	if needed > inode.AllocatedBlocks {
		inode.AllocatedBlocks = needed
	}
	inode.Size = uint64(len(data))
	return nil
}

// Unlink removes name from dir: for a regular file it drops the inode
// and frees the dentry; for a directory it cascades through DropInode
// exactly as documented there (§4.4), including the directory-drop
// quirk that leaves the directory's own in-memory inode and data
// blocks live.
func (fs *FS) Unlink(dir *Dentry, name string) error {
	if dir.inode == nil {
		if _, err := fs.ReadInode(dir, dir.Ino); err != nil {
			return err
		}
	}
	child, hit := matchChild(dir.inode, name)
	if !hit {
		return ErrNotFound
	}
	if child.inode == nil {
		if child.Ino == RootIno {
			return ErrInval
		}
		if _, err := fs.ReadInode(child, child.Ino); err != nil {
			return err
		}
	}
	if err := fs.DropInode(child.inode); err != nil {
		return err
	}
	return fs.DropDentry(dir.inode, child)
}
