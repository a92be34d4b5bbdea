package newfs

import (
	"bytes"
	"testing"
)

func TestSuperDiskRoundTrip(t *testing.T) {
	in := superDisk{
		Magic:          Magic,
		Usage:          42,
		MaxIno:         MaxIno,
		MaxDno:         MaxDno,
		InodeMapBlocks: inodeMapBlocks,
		InodeMapOffset: 1024,
		DataMapBlocks:  dataMapBlocks,
		DataMapOffset:  2048,
		InodeTabOffset: 4096,
		DataRegOffset:  8192,
	}
	buf, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(buf) != superDiskSize() {
		t.Fatalf("MarshalBinary produced %d bytes, superDiskSize() = %d", len(buf), superDiskSize())
	}

	var out superDisk
	if err := out.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestInodeDiskRoundTrip(t *testing.T) {
	in := inodeDisk{
		Ino:             3,
		Size:            123456,
		DirCount:        7,
		Type:            uint16(Dir),
		BlockPointer:    [DataBlocksPerFile]uint32{1, 2, 3, 0, 0, 0},
		AllocatedBlocks: 3,
	}
	buf := new(bytes.Buffer)
	if err := in.encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() != inodeRecordSize {
		t.Fatalf("encode produced %d bytes, want %d", buf.Len(), inodeRecordSize)
	}

	var out inodeDisk
	if err := out.decode(bytesReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDentryDiskRoundTrip(t *testing.T) {
	var in dentryDisk
	in.setName("hello.txt")
	in.Type = uint16(RegFile)
	in.Ino = 5

	buf := new(bytes.Buffer)
	if err := in.encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() != dentryRecordSize {
		t.Fatalf("encode produced %d bytes, want %d", buf.Len(), dentryRecordSize)
	}

	var out dentryDisk
	if err := out.decode(bytesReader(buf.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.nameString() != "hello.txt" {
		t.Fatalf("nameString() = %q, want %q", out.nameString(), "hello.txt")
	}
	if out.Type != in.Type || out.Ino != in.Ino {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDentryDiskNameTruncation(t *testing.T) {
	var d dentryDisk
	long := bytes.Repeat([]byte("x"), MaxFileName+10)
	d.setName(string(long))
	if got := len(d.nameString()); got != MaxFileName {
		t.Fatalf("nameString() length = %d, want %d (truncated, no room for a terminator)", got, MaxFileName)
	}
}
