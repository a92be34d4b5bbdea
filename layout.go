package newfs

// On-disk geometry, baked in at format time. These constants must be
// preserved exactly for on-disk compatibility: a volume formatted by one
// build must mount correctly under another. Grounded in
// original_source/fs/newfs/include/types.h (NEWFS_MAGIC_NUM,
// NEWFS_INODE_BLKS, NEWFS_DATA_BLKS, NEWFS_DATA_PER_FILE, ...).
const (
	// Magic is the super block's identifying magic number.
	Magic uint32 = 0x52415453

	// RootIno is the inode number of the root directory.
	RootIno uint32 = 0

	// MaxFileName is the fixed, zero-padded width of a directory entry's name field.
	MaxFileName = 128

	// DataBlocksPerFile is the maximum number of data blocks any single
	// inode (file or directory) may own. File sizes beyond this are out
	// of scope (§1 Non-goals).
	DataBlocksPerFile = 6

	// DefaultPerm is the permission bits new inodes are given; NewFS has
	// no permission model of its own, so this is a fixed convention for
	// daemons presenting it over POSIX.
	DefaultPerm = 0777

	// Region sizes in logical blocks (block = 2 * io unit).
	superBlocks     = 1
	inodeMapBlocks  = 1
	dataMapBlocks   = 1
	inodeTableBlocks = 585
	dataRegionBlocks = 3508

	// MaxIno and MaxDno are the bitmap scan ceilings: allocate() never
	// returns an index at or beyond these, even if the underlying byte
	// slice has more clear bits past the ceiling.
	MaxIno = inodeTableBlocks
	MaxDno = dataRegionBlocks
)

// geometry holds the byte offsets and block counts derived from a
// device's I/O unit size at format (or mount) time.
type geometry struct {
	ioSize    int
	blockSize int // 2 * ioSize

	superOffset     int64
	inodeMapOffset  int64
	dataMapOffset   int64
	inodeTabOffset  int64
	dataRegOffset   int64
}

// newGeometry derives the fixed region layout of §6 from the driver's
// reported I/O unit size.
func newGeometry(ioSize int) geometry {
	bs := int64(2 * ioSize)
	g := geometry{
		ioSize:    ioSize,
		blockSize: int(bs),
	}
	g.superOffset = 0
	g.inodeMapOffset = g.superOffset + superBlocks*bs
	g.dataMapOffset = g.inodeMapOffset + inodeMapBlocks*bs
	g.inodeTabOffset = g.dataMapOffset + dataMapBlocks*bs
	g.dataRegOffset = g.inodeTabOffset + inodeTableBlocks*bs
	return g
}

// inodeOffset returns the absolute byte offset of inode record ino.
func (g geometry) inodeOffset(ino uint32) int64 {
	return g.inodeTabOffset + int64(ino)*int64(g.blockSize)
}

// dataOffset returns the absolute byte offset of data block dno.
func (g geometry) dataOffset(dno uint32) int64 {
	return g.dataRegOffset + int64(dno)*int64(g.blockSize)
}

// dentriesPerBlock returns how many dentry records fit, packed tightly
// from offset zero, in one logical block.
func (g geometry) dentriesPerBlock() int {
	return g.blockSize / dentryRecordSize
}

// deviceSize returns the minimum device size in bytes this geometry requires.
func (g geometry) deviceSize() int64 {
	return g.dataRegOffset + dataRegionBlocks*int64(g.blockSize)
}
