package newfs_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/KarpelesLab/newfs"
)

// Scenario 1: format a fresh device, mount, lookup root, umount, remount.
func TestScenarioFormatMountLookupRoot(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	d, found, isRoot := fs.Lookup("/")
	if !found || !isRoot || d != fs.Root() {
		t.Fatalf("Lookup(/) = (%v, found=%v, isRoot=%v), want the root", d, found, isRoot)
	}
	if err := fs.Umount(); err != nil {
		t.Fatalf("Umount: %v", err)
	}

	fs2, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("remount: %v", err)
	}
	d2, found2, isRoot2 := fs2.Lookup("/")
	if !found2 || !isRoot2 || d2 != fs2.Root() {
		t.Fatalf("Lookup(/) after remount = (%v, found=%v, isRoot=%v), want the root", d2, found2, isRoot2)
	}
}

// Scenario 2: mkdir /a, mkdir /a/b, create /a/b/c; survives umount/remount.
func TestScenarioMkdirAndCreateSurviveRemount(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if _, err := fs.Mkdir("/a"); err != nil {
		t.Fatalf("Mkdir(/a): %v", err)
	}
	if _, err := fs.Mkdir("/a/b"); err != nil {
		t.Fatalf("Mkdir(/a/b): %v", err)
	}
	if _, err := fs.Create("/a/b/c"); err != nil {
		t.Fatalf("Create(/a/b/c): %v", err)
	}

	check := func(fs *newfs.FS) {
		t.Helper()
		d, found, _ := fs.Lookup("/a/b/c")
		if !found {
			t.Fatalf("Lookup(/a/b/c) not found")
		}
		if d.Type != newfs.RegFile {
			t.Fatalf("Lookup(/a/b/c).Type = %v, want RegFile", d.Type)
		}
		if d.Inode() == nil || d.Inode().Size != 0 {
			t.Fatalf("Lookup(/a/b/c) size = %v, want 0", d.Inode())
		}
	}
	check(fs)

	if err := fs.Umount(); err != nil {
		t.Fatalf("Umount: %v", err)
	}
	fs2, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("remount: %v", err)
	}
	check(fs2)
}

// Scenario 3: write into /a/b/c's first buffer, sync, remount, read back.
func TestScenarioWriteSyncRemountRead(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	fs.Mkdir("/a")
	fs.Mkdir("/a/b")
	fileDentry, err := fs.Create("/a/b/c")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.WriteFile(fileDentry, []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := fs.Umount(); err != nil {
		t.Fatalf("Umount: %v", err)
	}

	fs2, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("remount: %v", err)
	}
	d, found, _ := fs2.Lookup("/a/b/c")
	if !found {
		t.Fatalf("Lookup(/a/b/c) not found after remount")
	}
	data, err := fs2.ReadFile(d)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, []byte("hello")) {
		t.Fatalf("ReadFile = %q, want %q", data, "hello")
	}
	if d.Inode().AllocatedBlocks != 1 {
		t.Fatalf("AllocatedBlocks = %d, want 1", d.Inode().AllocatedBlocks)
	}
}

// Scenario 4: creating one more than DentriesPerBlock children at the
// root crosses a dentry-block boundary and allocates a second block.
func TestScenarioChildPastFirstBlockAllocatesSecondBlock(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	perBlock := fs.DentriesPerBlock()
	for i := 0; i <= perBlock; i++ {
		if _, err := fs.Create(fmt.Sprintf("/f%d", i)); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	root := fs.Root()
	if root.Inode().AllocatedBlocks != 2 {
		t.Fatalf("root AllocatedBlocks = %d, want 2 after %d children", root.Inode().AllocatedBlocks, perBlock+1)
	}
}

// Scenario 5: lookup of a missing top-level name returns found=false
// with the root as the returned dentry.
func TestScenarioLookupMissingReturnsRoot(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	d, found, _ := fs.Lookup("/nope")
	if found {
		t.Fatalf("Lookup(/nope) unexpectedly found")
	}
	if d != fs.Root() {
		t.Fatalf("Lookup(/nope) dentry = %v, want root", d)
	}
}

// Scenario 6: allocating past max_ino fails with NO_SPACE and leaves
// the bitmap usage at exactly max_ino. Entries are spread across many
// small directories (well under the 42-entry-per-directory ceiling a
// single directory's 6 data blocks impose) so the run hits inode
// exhaustion rather than a directory's own NO_SPACE first.
func TestScenarioInodeExhaustionReturnsNoSpace(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	const perDir = 20
	var lastErr error
	created := 0
	dirIdx, fileIdx := 0, 0
	for i := 0; i < newfs.MaxIno+10; i++ {
		if fileIdx == 0 {
			if _, err := fs.Mkdir(fmt.Sprintf("/d%d", dirIdx)); err != nil {
				lastErr = err
				break
			}
			created++
		}
		if _, err := fs.Create(fmt.Sprintf("/d%d/f%d", dirIdx, fileIdx)); err != nil {
			lastErr = err
			break
		}
		created++
		fileIdx++
		if fileIdx >= perDir {
			fileIdx = 0
			dirIdx++
		}
	}
	if lastErr != newfs.ErrNoSpace {
		t.Fatalf("final error = %v, want ErrNoSpace", lastErr)
	}
	// root itself consumed inode 0, so exactly MaxIno-1 further
	// allocations (directories and files together) should have
	// succeeded before exhaustion.
	if created != newfs.MaxIno-1 {
		t.Fatalf("created %d inodes before exhaustion, want %d", created, newfs.MaxIno-1)
	}
}
