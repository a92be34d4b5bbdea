package newfs

// FS is the mounted filesystem handle threaded through every public
// operation (§9 "re-architect as an explicit filesystem handle" --
// replacing the original source's process-wide newfs_super global).
// Resource ownership is parent-to-child throughout: FS owns the two
// bitmap buffers and the root dentry; the root dentry owns its inode;
// directories own their children's dentries transitively; the Driver is
// owned by FS.
type FS struct {
	drv Driver
	g   geometry
	bio *blockIO

	usage uint32

	inodeBitmap *bitmap
	dataBitmap  *bitmap

	root    *Dentry
	mounted bool
}

// Mount opens a filesystem against drv: it queries the I/O unit size
// (the device size is not queried or checked), derives the block size
// (2x the I/O unit), reads the super
// block, and if the magic doesn't match, formats a fresh volume in
// place. It then loads both bitmaps, allocates (on a fresh format) or
// reads (otherwise) the root inode, and marks the filesystem mounted.
//
// Grounded in original_source/fs/newfs/src/newfs_utils.c's newfs_mount.
func Mount(drv Driver) (*FS, error) {
	ioSize, err := drv.IOUnitSize()
	if err != nil {
		return nil, err
	}

	fs := &FS{
		drv: drv,
		g:   newGeometry(ioSize),
	}
	fs.bio = &blockIO{drv: drv, g: fs.g}

	rootDentry := NewDentry("/", Dir)

	superBuf := make([]byte, superDiskSize())
	var sd superDisk
	needsFormat := true
	if err := fs.bio.read(fs.g.superOffset, superBuf); err == nil {
		if err := sd.UnmarshalBinary(superBuf); err == nil && sd.Magic == Magic {
			needsFormat = false
		}
	}

	if needsFormat {
		sd = superDisk{
			Magic:          Magic,
			Usage:          0,
			MaxIno:         MaxIno,
			MaxDno:         MaxDno,
			InodeMapBlocks: inodeMapBlocks,
			InodeMapOffset: uint64(fs.g.inodeMapOffset),
			DataMapBlocks:  dataMapBlocks,
			DataMapOffset:  uint64(fs.g.dataMapOffset),
			InodeTabOffset: uint64(fs.g.inodeTabOffset),
			DataRegOffset:  uint64(fs.g.dataRegOffset),
		}
	}

	fs.usage = sd.Usage

	inodeMapBuf := make([]byte, fs.g.blockSize)
	dataMapBuf := make([]byte, fs.g.blockSize)
	if !needsFormat {
		if err := fs.bio.read(int64(sd.InodeMapOffset), inodeMapBuf); err != nil {
			return nil, err
		}
		if err := fs.bio.read(int64(sd.DataMapOffset), dataMapBuf); err != nil {
			return nil, err
		}
	}
	fs.inodeBitmap = newBitmap(inodeMapBuf, int(sd.MaxIno))
	fs.dataBitmap = newBitmap(dataMapBuf, int(sd.MaxDno))

	fs.root = rootDentry
	fs.mounted = true

	if needsFormat {
		rootInode, err := fs.AllocInode(rootDentry)
		if err != nil {
			return nil, err
		}
		if err := fs.SyncInode(rootInode); err != nil {
			return nil, err
		}
		if err := fs.writeSuper(sd); err != nil {
			return nil, err
		}
		if err := fs.writeBitmaps(sd); err != nil {
			return nil, err
		}
	}

	if _, err := fs.ReadInode(rootDentry, RootIno); err != nil {
		return nil, err
	}

	return fs, nil
}

// Umount, if the filesystem is mounted, syncs the root inode
// recursively, writes back the super block and both bitmaps, releases
// the bitmap buffers, and closes the driver. It is a no-op if the
// filesystem is not mounted.
//
// Grounded in original_source/fs/newfs/src/newfs_utils.c's newfs_umount.
func (fs *FS) Umount() error {
	if !fs.mounted {
		return nil
	}

	if err := fs.SyncInode(fs.root.inode); err != nil {
		return err
	}

	sd := superDisk{
		Magic:          Magic,
		Usage:          fs.usage,
		MaxIno:         MaxIno,
		MaxDno:         MaxDno,
		InodeMapBlocks: inodeMapBlocks,
		InodeMapOffset: uint64(fs.g.inodeMapOffset),
		DataMapBlocks:  dataMapBlocks,
		DataMapOffset:  uint64(fs.g.dataMapOffset),
		InodeTabOffset: uint64(fs.g.inodeTabOffset),
		DataRegOffset:  uint64(fs.g.dataRegOffset),
	}

	if err := fs.writeSuper(sd); err != nil {
		return err
	}
	if err := fs.writeBitmaps(sd); err != nil {
		return err
	}

	fs.inodeBitmap = nil
	fs.dataBitmap = nil
	fs.mounted = false

	return fs.drv.Close()
}

func (fs *FS) writeSuper(sd superDisk) error {
	buf, err := sd.MarshalBinary()
	if err != nil {
		return err
	}
	return fs.bio.write(fs.g.superOffset, buf)
}

func (fs *FS) writeBitmaps(sd superDisk) error {
	if err := fs.bio.write(int64(sd.InodeMapOffset), fs.inodeBitmap.bits); err != nil {
		return err
	}
	return fs.bio.write(int64(sd.DataMapOffset), fs.dataBitmap.bits)
}

// Root returns the mounted filesystem's root dentry.
func (fs *FS) Root() *Dentry { return fs.root }

// Mounted reports whether the filesystem is currently mounted.
func (fs *FS) Mounted() bool { return fs.mounted }

// BlockSize returns the derived logical block size (2x the driver's I/O unit).
func (fs *FS) BlockSize() int { return fs.g.blockSize }

// DentriesPerBlock returns how many directory-entry records fit in one
// logical block at this filesystem's block size.
func (fs *FS) DentriesPerBlock() int { return fs.g.dentriesPerBlock() }

// DriverHandle returns the Driver this filesystem is mounted on, so
// callers can operate on the raw device image.
func (fs *FS) DriverHandle() Driver { return fs.drv }
