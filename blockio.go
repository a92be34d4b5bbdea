package newfs

// blockIO translates arbitrary (offset, length) requests into aligned
// driver transfers at the driver's I/O-unit granularity (§4.1).
// Grounded in original_source/fs/newfs/src/newfs_utils.c's
// newfs_driver_read / newfs_driver_write.
type blockIO struct {
	drv Driver
	g   geometry
}

func roundDown(value, round int64) int64 {
	if value%round == 0 {
		return value
	}
	return (value / round) * round
}

func roundUp(value, round int64) int64 {
	if value%round == 0 {
		return value
	}
	return (value/round + 1) * round
}

// read fills out with size bytes starting at offset, rounding the
// request out to the driver's I/O-unit boundary and slicing the result.
func (b *blockIO) read(offset int64, out []byte) error {
	size := int64(len(out))
	ioSize := int64(b.g.ioSize)
	alignedOffset := roundDown(offset, ioSize)
	bias := offset - alignedOffset
	alignedSize := roundUp(size+bias, ioSize)

	tmp := make([]byte, alignedSize)
	if err := b.drv.Seek(alignedOffset); err != nil {
		return err
	}
	for cur := int64(0); cur < alignedSize; cur += ioSize {
		if err := b.drv.ReadUnit(tmp[cur : cur+ioSize]); err != nil {
			return err
		}
	}
	copy(out, tmp[bias:bias+size])
	return nil
}

// write performs a read-modify-write of the aligned range covering
// (offset, len(in)): the covering range is read, the payload copied into
// its biased position, and the range written back, so sub-block writes
// preserve neighboring bytes.
func (b *blockIO) write(offset int64, in []byte) error {
	size := int64(len(in))
	ioSize := int64(b.g.ioSize)
	alignedOffset := roundDown(offset, ioSize)
	bias := offset - alignedOffset
	alignedSize := roundUp(size+bias, ioSize)

	tmp := make([]byte, alignedSize)
	if err := b.drv.Seek(alignedOffset); err != nil {
		return err
	}
	for cur := int64(0); cur < alignedSize; cur += ioSize {
		if err := b.drv.ReadUnit(tmp[cur : cur+ioSize]); err != nil {
			return err
		}
	}

	copy(tmp[bias:bias+size], in)

	if err := b.drv.Seek(alignedOffset); err != nil {
		return err
	}
	for cur := int64(0); cur < alignedSize; cur += ioSize {
		if err := b.drv.WriteUnit(tmp[cur : cur+ioSize]); err != nil {
			return err
		}
	}
	return nil
}
