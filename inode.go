package newfs

import "bytes"

// Inode is the in-memory representation of a file or directory (§3). It
// extends the on-disk record with a back-pointer to its owning dentry, a
// head pointer to its child dentry list (directories only), and up to
// six owned one-block data buffers (regular files only).
//
// Grounded in original_source/fs/newfs/include/types.h's struct
// newfs_inode and the allocation/sync/read functions in
// original_source/fs/newfs/src/newfs_utils.c.
type Inode struct {
	fs *FS

	Ino             uint32
	Size            uint64
	DirCount        uint32
	Type            FileType
	BlockPointer    [DataBlocksPerFile]uint32
	AllocatedBlocks int

	dentry   *Dentry                   // back-pointer
	children *Dentry                   // head of child dentry list (directories only)
	data     [DataBlocksPerFile][]byte // owned data buffers (regular files only)
}

// Dentry returns the inode's owning dentry.
func (i *Inode) Dentry() *Dentry { return i.dentry }

// Data returns the n-th owned in-memory data buffer of a regular file,
// or nil if n is out of range. The returned slice is owned by the inode
// and is block-sized; writers may mutate it in place. SyncInode flushes
// only the first AllocatedBlocks buffers, so changes to a buffer that has
// no data block allocated yet (see WriteFile) are not written to disk.
func (i *Inode) Data(n int) []byte {
	if n < 0 || n >= DataBlocksPerFile {
		return nil
	}
	return i.data[n]
}

// AllocInode allocates an inode-bitmap bit, constructs an in-memory
// inode with that number, links it to dentry in both directions, and --
// if dentry's type is RegFile -- eagerly allocates six in-memory data
// buffers of one block each (on-disk data blocks are allocated later, by
// WriteFile; SyncInode never allocates them). Directories start with no child list and no allocated
// data block. Fails with ErrNoSpace if the inode bitmap is full.
func (fs *FS) AllocInode(dentry *Dentry) (*Inode, error) {
	if !fs.mounted {
		return nil, ErrNotMounted
	}

	idx, err := fs.inodeBitmap.allocate()
	if err != nil {
		return nil, err
	}

	ino := &Inode{
		fs:     fs,
		Ino:    uint32(idx),
		Type:   dentry.Type,
		dentry: dentry,
	}

	dentry.inode = ino
	dentry.Ino = ino.Ino

	if dentry.Type == RegFile {
		for b := 0; b < DataBlocksPerFile; b++ {
			ino.data[b] = make([]byte, fs.g.blockSize)
		}
	}

	return ino, nil
}

// AllocDentry prepends dentry to dir's child list (insertion is LIFO; §3
// "readers must not assume otherwise"). If the current directory-entry
// count is a multiple of dentriesPerBlock, a fresh data block is
// allocated first and recorded at BlockPointer[AllocatedBlocks++]. Fails
// with ErrNoSpace if the data bitmap is exhausted, or if dir has already
// used all DataBlocksPerFile block pointers (§3 "allocated_blocks <= 6",
// §7 NO_SPACE on directory overflow) and would need a seventh.
// Increments DirCount and adds one dentry record's size to Size.
func (fs *FS) AllocDentry(dir *Inode, dentry *Dentry) error {
	if int(dir.DirCount)%fs.g.dentriesPerBlock() == 0 {
		if dir.AllocatedBlocks >= DataBlocksPerFile {
			return ErrNoSpace
		}
		dno, err := fs.dataBitmap.allocate()
		if err != nil {
			return err
		}
		dir.BlockPointer[dir.AllocatedBlocks] = uint32(dno)
		dir.AllocatedBlocks++
	}

	dentry.parent = dir.dentry
	dentry.sibling = dir.children
	dir.children = dentry

	dir.DirCount++
	dir.Size += dentryRecordSize
	return nil
}

// linkDentry prepends dentry to dir's child list like AllocDentry, but
// never touches the data bitmap or AllocatedBlocks, and leaves DirCount
// and Size unchanged (ReadInode has already taken both from the on-disk
// record). ReadInode uses this while reconstructing children whose data blocks
// already exist on disk -- calling AllocDentry here would re-allocate
// bitmap bits for blocks that are already live, double-counting the
// bitmap on every mount (§9, §4.4 "a correct implementation should link
// children without touching the data allocator").
func linkDentry(dir *Inode, dentry *Dentry) {
	dentry.parent = dir.dentry
	dentry.sibling = dir.children
	dir.children = dentry
}

// DropDentry unlinks dentry from dir's child list by pointer identity
// (not by name) and decrements DirCount. Returns ErrNotFound if dentry
// isn't a child of dir. Data blocks are never reclaimed here, even if
// the last entry in a block is removed -- blocks are retained for the
// lifetime of the directory.
func (fs *FS) DropDentry(dir *Inode, dentry *Dentry) error {
	if dir.children == dentry {
		dir.children = dentry.sibling
		dir.DirCount--
		return nil
	}
	for cur := dir.children; cur != nil; cur = cur.sibling {
		if cur.sibling == dentry {
			cur.sibling = dentry.sibling
			dir.DirCount--
			return nil
		}
	}
	return ErrNotFound
}

// DropInode releases inode. It is forbidden on the root inode (returns
// ErrInval). For directories, it recurses into each child (dropping the
// child's inode, unlinking the child's dentry, freeing the child
// dentry), then clears the inode bit -- preserving the documented source
// behavior of not freeing the directory's own in-memory inode and not
// releasing its data blocks from the data bitmap (§4.4, §9). For regular
// files, it frees the six in-memory data buffers, clears the inode bit,
// and frees the in-memory inode.
func (fs *FS) DropInode(inode *Inode) error {
	if inode == fs.root.inode {
		return ErrInval
	}

	if inode.Type == Dir {
		for cur := inode.children; cur != nil; {
			next := cur.sibling
			childIno := cur.inode
			if childIno == nil {
				loaded, err := fs.ReadInode(cur, cur.Ino)
				if err != nil {
					return err
				}
				childIno = loaded
			}
			if err := fs.DropInode(childIno); err != nil {
				return err
			}
			fs.DropDentry(inode, cur)
			cur = next
		}
		fs.inodeBitmap.free(int(inode.Ino))
		return nil
	}

	for b := 0; b < DataBlocksPerFile; b++ {
		inode.data[b] = nil
	}
	fs.inodeBitmap.free(int(inode.Ino))
	return nil
}

// ReadInode reads the inode record at its numeric offset, constructs an
// in-memory inode, and for directories reads and materializes exactly
// DirCount child dentries from the inode's data blocks: block index i
// holds dentries i*dentriesPerBlock .. (i+1)*dentriesPerBlock-1, packed
// tightly from offset zero of each block, with no per-entry terminator.
// Each child dentry is linked via linkDentry (not AllocDentry -- see its
// doc comment) with a nil inode pointer; materialization on demand
// happens in the resolver. For regular files, it allocates six in-memory
// buffers and reads the data blocks at their recorded indices.
func (fs *FS) ReadInode(dentry *Dentry, ino uint32) (*Inode, error) {
	buf := make([]byte, inodeRecordSize)
	if err := fs.bio.read(fs.g.inodeOffset(ino), buf); err != nil {
		return nil, err
	}

	var rec inodeDisk
	if err := rec.decode(bytesReader(buf)); err != nil {
		return nil, err
	}

	inode := &Inode{
		fs:              fs,
		Ino:             rec.Ino,
		Size:            rec.Size,
		DirCount:        rec.DirCount,
		Type:            FileType(rec.Type),
		BlockPointer:    rec.BlockPointer,
		AllocatedBlocks: int(rec.AllocatedBlocks),
		dentry:          dentry,
	}
	dentry.inode = inode
	dentry.Ino = inode.Ino
	dentry.Type = inode.Type

	if inode.Type == Dir {
		remaining := int(inode.DirCount)
		perBlock := fs.g.dentriesPerBlock()
		for b := 0; b < inode.AllocatedBlocks && remaining > 0; b++ {
			offset := fs.g.dataOffset(inode.BlockPointer[b])
			for cnt := 0; cnt < perBlock && remaining > 0; cnt++ {
				ebuf := make([]byte, dentryRecordSize)
				if err := fs.bio.read(offset, ebuf); err != nil {
					return nil, err
				}
				var erec dentryDisk
				if err := erec.decode(bytesReader(ebuf)); err != nil {
					return nil, err
				}
				child := &Dentry{
					Name: erec.nameString(),
					Type: FileType(erec.Type),
					Ino:  erec.Ino,
				}
				linkDentry(inode, child)
				offset += dentryRecordSize
				remaining--
			}
		}
		return inode, nil
	}

	for b := 0; b < DataBlocksPerFile; b++ {
		data := make([]byte, fs.g.blockSize)
		if b < inode.AllocatedBlocks {
			if err := fs.bio.read(fs.g.dataOffset(inode.BlockPointer[b]), data); err != nil {
				return nil, err
			}
		}
		inode.data[b] = data
	}
	return inode, nil
}

// GetDentry returns the childIndex-th child of dir by list order, or nil
// if out of range.
func (fs *FS) GetDentry(dir *Inode, childIndex int) *Dentry {
	cur := dir.children
	for i := 0; cur != nil; i++ {
		if i == childIndex {
			return cur
		}
		cur = cur.sibling
	}
	return nil
}

// SyncInode writes inode's on-disk record at its numeric offset, then
// for directories walks the child list writing up to dentriesPerBlock
// consecutive dentry records into each allocated data block (the walker
// continues across blocks from where the previous block left off, so
// on-disk order matches in-memory child-list order) and recurses into
// each child's inode; for regular files it writes each allocated
// in-memory data buffer to its recorded data-block offset. Sync is
// non-transactional (§4.6): a crash mid-sync may leave dentry blocks and
// inode records inconsistent.
func (fs *FS) SyncInode(inode *Inode) error {
	rec := inodeDisk{
		Ino:             inode.Ino,
		Size:            inode.Size,
		DirCount:        inode.DirCount,
		Type:            uint16(inode.Type),
		BlockPointer:    inode.BlockPointer,
		AllocatedBlocks: uint32(inode.AllocatedBlocks),
	}
	buf := new(bytes.Buffer)
	if err := rec.encode(buf); err != nil {
		return err
	}
	if err := fs.bio.write(fs.g.inodeOffset(inode.Ino), buf.Bytes()); err != nil {
		return err
	}

	switch inode.Type {
	case Dir:
		perBlock := fs.g.dentriesPerBlock()
		cursor := inode.children
		for b := 0; cursor != nil && b < inode.AllocatedBlocks; b++ {
			offset := fs.g.dataOffset(inode.BlockPointer[b])
			for cnt := 0; cursor != nil && cnt < perBlock; cnt++ {
				var erec dentryDisk
				erec.setName(cursor.Name)
				erec.Type = uint16(cursor.Type)
				erec.Ino = cursor.Ino

				ebuf := new(bytes.Buffer)
				if err := erec.encode(ebuf); err != nil {
					return err
				}
				if err := fs.bio.write(offset, ebuf.Bytes()); err != nil {
					return err
				}

				if cursor.inode != nil {
					if err := fs.SyncInode(cursor.inode); err != nil {
						return err
					}
				}

				offset += dentryRecordSize
				cursor = cursor.sibling
			}
		}
	case RegFile:
		for b := 0; b < inode.AllocatedBlocks; b++ {
			if err := fs.bio.write(fs.g.dataOffset(inode.BlockPointer[b]), inode.data[b]); err != nil {
				return err
			}
		}
	}
	return nil
}
