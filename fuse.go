//go:build fuse

package newfs

import (
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// FillAttr maps the in-memory inode's size, type, permission, and a
// synthetic modification time onto a go-fuse attribute struct, for a
// hosting daemon to answer Getattr/Lookup. This is the daemon-facing
// attribute-filling surface only -- there is no NodeFS wiring or op
// dispatch loop here, that remains the daemon's job (§1 Non-goals),
// matching how the teacher's own FillAttr (inode_linux.go) never
// implements the FUSE op loop either.
//
// Grounded in inode_fuse.go / inode_linux.go / inode_darwin.go in the
// pack; ModeToUnix is this module's own (mode.go), not the teacher's
// external apkgfs dependency, which this module does not carry.
func (i *Inode) FillAttr(attr *fuse.Attr) {
	attr.Size = i.Size
	attr.Blocks = uint64(i.AllocatedBlocks)
	attr.Mode = ModeToUnix(i.Type.Mode() | DefaultPerm)
	attr.Nlink = 1
	if i.Type == Dir {
		attr.Nlink = 2
	}
	if i.fs != nil {
		attr.Blksize = uint32(i.fs.g.blockSize)
	}
	now := uint64(time.Now().Unix())
	attr.Atime = now
	attr.Mtime = now
	attr.Ctime = now
}
