package newfs_test

import (
	"bytes"
	"testing"

	"github.com/KarpelesLab/newfs"
)

func TestExportImportGzipRoundTrip(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if _, err := fs.Mkdir("/a"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	fileDentry, err := fs.Create("/a/f")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.WriteFile(fileDentry, []byte("snapshot me")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var snap bytes.Buffer
	if err := newfs.Export(fs, &snap, newfs.CodecGzip); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if snap.Len() == 0 {
		t.Fatalf("Export produced an empty snapshot")
	}

	restoreDrv := newfs.NewMemoryDriver(4<<20, 512)
	if err := newfs.Import(&snap, newfs.CodecGzip, restoreDrv); err != nil {
		t.Fatalf("Import: %v", err)
	}

	restored, err := newfs.Mount(restoreDrv)
	if err != nil {
		t.Fatalf("Mount restored image: %v", err)
	}
	d, found, _ := restored.Lookup("/a/f")
	if !found {
		t.Fatalf("Lookup(/a/f) not found in restored image")
	}
	data, err := restored.ReadFile(d)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "snapshot me" {
		t.Fatalf("ReadFile = %q, want %q", data, "snapshot me")
	}
}

func TestExportUnregisteredCodecFails(t *testing.T) {
	drv := newfs.NewMemoryDriver(4<<20, 512)
	fs, err := newfs.Mount(drv)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	var out bytes.Buffer
	err = newfs.Export(fs, &out, newfs.CodecXZ)
	if err == nil {
		t.Fatalf("Export with unregistered codec succeeded, want an error (xz is built only with the xz tag)")
	}
}
