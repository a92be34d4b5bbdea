package newfs

// Dentry is the in-memory (name, type, inode-number) triple linking a
// child into a parent directory (§3). Children of one directory form a
// singly linked list via sibling, rooted at the owning Inode's children
// field; insertion is LIFO, so readers must not assume any particular
// order. The root dentry has Name "/" and a nil parent.
//
// Grounded in original_source/fs/newfs/include/types.h's
// struct newfs_dentry and its new_dentry() constructor.
type Dentry struct {
	Name string
	Type FileType
	Ino  uint32

	inode   *Inode // nullable: lazily materialized by ReadInode
	parent  *Dentry
	sibling *Dentry
}

// NewDentry constructs a detached dentry for name/typ. The inode number
// is unset (0) until the dentry is linked by AllocInode or populated by
// read-back from disk.
func NewDentry(name string, typ FileType) *Dentry {
	return &Dentry{Name: name, Type: typ}
}

// Inode returns the dentry's materialized inode, or nil if it hasn't
// been loaded yet.
func (d *Dentry) Inode() *Inode { return d.inode }

// Parent returns the owning directory's dentry, or nil for the root.
func (d *Dentry) Parent() *Dentry { return d.parent }

// childCount returns the number of dentries currently linked under dir,
// walking the sibling list -- used by invariant checks and tests, not
// by any hot path.
func childCount(dir *Inode) int {
	n := 0
	for c := dir.children; c != nil; c = c.sibling {
		n++
	}
	return n
}
