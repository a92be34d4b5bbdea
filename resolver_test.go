package newfs_test

import (
	"testing"

	"github.com/KarpelesLab/newfs"
)

func mustMount(t *testing.T) *newfs.FS {
	t.Helper()
	drv := newfs.NewMemoryDriver(8<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return fs
}

func TestLookupRoot(t *testing.T) {
	fs := mustMount(t)
	d, found, isRoot := fs.Lookup("/")
	if !found || !isRoot {
		t.Fatalf("Lookup(/) = (found=%v, isRoot=%v), want (true, true)", found, isRoot)
	}
	if d != fs.Root() {
		t.Fatalf("Lookup(/) returned a different dentry than Root()")
	}
}

func TestLookupNestedHitAndMiss(t *testing.T) {
	fs := mustMount(t)
	if _, err := fs.Mkdir("/a"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if _, err := fs.Mkdir("/a/b"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if _, err := fs.Create("/a/b/c"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	d, found, _ := fs.Lookup("/a/b/c")
	if !found {
		t.Fatalf("Lookup(/a/b/c) not found")
	}
	if d.Name != "c" {
		t.Fatalf("Lookup(/a/b/c).Name = %q, want %q", d.Name, "c")
	}

	if _, found, _ := fs.Lookup("/a/b/nope"); found {
		t.Fatalf("Lookup(/a/b/nope) unexpectedly found")
	}
}

func TestLookupPrefixMatchQuirk(t *testing.T) {
	fs := mustMount(t)
	if _, err := fs.Mkdir("/ab"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	// The resolver matches a candidate name against a token using the
	// token's length as the compare length (§4.5) -- deliberately kept,
	// not switched to full-string equality. Looking up "/a" must hit the
	// "ab" entry because "ab"[:len("a")] == "a".
	d, found, _ := fs.Lookup("/a")
	if !found {
		t.Fatalf("Lookup(/a) not found, want the prefix-match quirk to hit /ab")
	}
	if d.Name != "ab" {
		t.Fatalf("Lookup(/a).Name = %q, want %q (prefix match)", d.Name, "ab")
	}
}

func TestLookupThroughRegularFileTruncates(t *testing.T) {
	fs := mustMount(t)
	if _, err := fs.Create("/f"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// "/f/more" can't descend past the regular file "f" -- this must be
	// reported as not found regardless of how many tokens remain after
	// it (see resolver.go's off-by-one fix discussion in DESIGN.md).
	_, found, _ := fs.Lookup("/f/more")
	if found {
		t.Fatalf("Lookup(/f/more) unexpectedly found through a regular file")
	}
}
