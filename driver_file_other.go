//go:build !linux

package newfs

import (
	"io"
	"os"
)

// fileDriver is the non-Linux fallback: block-device ioctls aren't
// available outside Linux, so every backing path is treated as a plain
// regular file (a loopback image) sized with Stat and given a fixed
// 512-byte I/O unit, mirroring the loopback-file branch of the Linux
// implementation in driver_file.go.
type fileDriver struct {
	f       *os.File
	ioUnit  int
	devSize int64
}

// Open opens path as a NewFS backing device (a loopback image file; raw
// block devices require the Linux build of this function).
func Open(path string) (Driver, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &wrappedErr{kind: ErrIO, cause: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &wrappedErr{kind: ErrIO, cause: err}
	}
	return &fileDriver{f: f, ioUnit: 512, devSize: fi.Size()}, nil
}

func (d *fileDriver) Seek(offset int64) error {
	if _, err := d.f.Seek(offset, io.SeekStart); err != nil {
		return ErrSeek
	}
	return nil
}

func (d *fileDriver) ReadUnit(p []byte) error {
	if len(p) != d.ioUnit {
		return ErrInval
	}
	if _, err := d.f.Read(p); err != nil {
		return driverErr(err)
	}
	return nil
}

func (d *fileDriver) WriteUnit(p []byte) error {
	if len(p) != d.ioUnit {
		return ErrInval
	}
	if _, err := d.f.Write(p); err != nil {
		return driverErr(err)
	}
	return nil
}

func (d *fileDriver) Close() error { return d.f.Close() }

func (d *fileDriver) DeviceSize() (int64, error) { return d.devSize, nil }

func (d *fileDriver) IOUnitSize() (int, error) { return d.ioUnit, nil }
