package newfs

import (
	"bytes"
	"encoding/binary"
	"reflect"
)

// On-disk record layouts (§4.3). All integers are host-endian with no
// padding beyond what writing each field in order naturally produces;
// field order and widths must match between a volume's writer and its
// reader, which in this module is always the same code path. A volume is
// therefore not portable between hosts of different byte order, and no
// magic-derived byte order is sniffed the way the teacher's Superblock
// does for a format it merely reads.
var byteOrder = binary.NativeEndian

// superDisk is the §3 super block record.
type superDisk struct {
	Magic          uint32
	Usage          uint32
	MaxIno         uint32
	MaxDno         uint32
	InodeMapBlocks uint32
	InodeMapOffset uint64
	DataMapBlocks  uint32
	DataMapOffset  uint64
	InodeTabOffset uint64
	DataRegOffset  uint64
}

// superDiskSize is computed from the exported field widths, the
// same reflection trick the teacher's Superblock.binarySize uses.
func superDiskSize() int {
	v := reflect.ValueOf(superDisk{})
	sz := 0
	for i := 0; i < v.NumField(); i++ {
		sz += int(v.Type().Field(i).Type.Size())
	}
	return sz
}

// MarshalBinary encodes the super block record field by field, in
// declaration order.
func (s *superDisk) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	v := reflect.ValueOf(*s)
	for i := 0; i < v.NumField(); i++ {
		if err := binary.Write(buf, byteOrder, v.Field(i).Interface()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a super block record, mirroring
// Superblock.UnmarshalBinary in the teacher's super.go: walk the
// exported fields by reflection and binary.Read each one in turn.
func (s *superDisk) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	v := reflect.ValueOf(s).Elem()
	for i := 0; i < v.NumField(); i++ {
		if err := binary.Read(r, byteOrder, v.Field(i).Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

// inodeDisk is the §3 inode record: inode number, size, directory-entry
// count, type tag, six block pointers, and an allocated-block count.
type inodeDisk struct {
	Ino             uint32
	Size            uint64
	DirCount        uint32
	Type            uint16
	BlockPointer    [DataBlocksPerFile]uint32
	AllocatedBlocks uint32
}

const inodeRecordSize = 4 + 8 + 4 + 2 + DataBlocksPerFile*4 + 4

// encode writes the inode record field by field, the explicit-sequential
// style the teacher uses in inode.go's GetInodeRef, rather than the
// reflection walk used for the super block above -- the two records are
// given deliberately different textures, matching how the teacher itself
// mixes styles between its own super.go and inode.go.
func (d *inodeDisk) encode(w *bytes.Buffer) error {
	for _, f := range []any{d.Ino, d.Size, d.DirCount, d.Type} {
		if err := binary.Write(w, byteOrder, f); err != nil {
			return err
		}
	}
	if err := binary.Write(w, byteOrder, d.BlockPointer); err != nil {
		return err
	}
	return binary.Write(w, byteOrder, d.AllocatedBlocks)
}

func (d *inodeDisk) decode(r *bytes.Reader) error {
	if err := binary.Read(r, byteOrder, &d.Ino); err != nil {
		return err
	}
	if err := binary.Read(r, byteOrder, &d.Size); err != nil {
		return err
	}
	if err := binary.Read(r, byteOrder, &d.DirCount); err != nil {
		return err
	}
	if err := binary.Read(r, byteOrder, &d.Type); err != nil {
		return err
	}
	if err := binary.Read(r, byteOrder, &d.BlockPointer); err != nil {
		return err
	}
	return binary.Read(r, byteOrder, &d.AllocatedBlocks)
}

// dentryDisk is the §3 directory-entry record: a zero-padded 128-byte
// name, a type tag, and an inode number.
type dentryDisk struct {
	Name [MaxFileName]byte
	Type uint16
	Ino  uint32
}

const dentryRecordSize = MaxFileName + 2 + 4

func (d *dentryDisk) encode(w *bytes.Buffer) error {
	if err := binary.Write(w, byteOrder, d.Name); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, d.Type); err != nil {
		return err
	}
	return binary.Write(w, byteOrder, d.Ino)
}

func (d *dentryDisk) decode(r *bytes.Reader) error {
	if err := binary.Read(r, byteOrder, &d.Name); err != nil {
		return err
	}
	if err := binary.Read(r, byteOrder, &d.Type); err != nil {
		return err
	}
	return binary.Read(r, byteOrder, &d.Ino)
}

// bytesReader adapts a []byte to a *bytes.Reader for the decode helpers above.
func bytesReader(p []byte) *bytes.Reader {
	return bytes.NewReader(p)
}

// nameString returns the zero-padded name field trimmed to its content.
func (d *dentryDisk) nameString() string {
	n := bytes.IndexByte(d.Name[:], 0)
	if n < 0 {
		n = len(d.Name)
	}
	return string(d.Name[:n])
}

// setName copies name into the fixed-width, zero-padded field. Names
// longer than MaxFileName are truncated to MaxFileName bytes, and a name
// of MaxFileName bytes or more is stored with no terminating zero; the
// daemon layer is expected to reject overlong names before they reach
// the core.
func (d *dentryDisk) setName(name string) {
	var buf [MaxFileName]byte
	copy(buf[:], name)
	d.Name = buf
}
