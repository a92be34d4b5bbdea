package newfs

import (
	"io"
	"os"
)

// CreateImage creates (or truncates) a plain file at path sized to hold
// a freshly formatted volume at the given I/O unit size, ready to be
// passed to Open. It is the loopback-image equivalent of partitioning a
// real block device before the first mount.
func CreateImage(path string, ioUnit int) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return &wrappedErr{kind: ErrIO, cause: err}
	}
	defer f.Close()

	g := newGeometry(ioUnit)
	if err := f.Truncate(g.deviceSize()); err != nil {
		return &wrappedErr{kind: ErrIO, cause: err}
	}
	return nil
}

// Driver is the block device contract the core consumes (§6): seek to an
// absolute byte offset, read or write exactly one I/O unit, and close.
// Two ioctl-shaped queries report the device size and I/O unit size.
// Offsets passed to Seek must be multiples of the I/O unit size.
//
// The driver itself -- talking to a real block device or loopback file --
// is an external collaborator and out of scope for the core (§1); this
// module ships two reference implementations (driver_mem.go,
// driver_file.go) the way the teacher ships a mock io.ReaderAt for its
// own tests and a real-file Open() for production use.
type Driver interface {
	Seek(offset int64) error
	ReadUnit(p []byte) error
	WriteUnit(p []byte) error
	Close() error
	DeviceSize() (int64, error)
	IOUnitSize() (int, error)
}

// driverErr wraps a low-level I/O failure as ErrIO without losing the
// original error text, used by the Driver implementations' ReadUnit and
// WriteUnit.
func driverErr(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF {
		return ErrIO
	}
	return &wrappedErr{kind: ErrIO, cause: err}
}

type wrappedErr struct {
	kind  error
	cause error
}

func (w *wrappedErr) Error() string { return w.kind.Error() + ": " + w.cause.Error() }
func (w *wrappedErr) Unwrap() error { return w.kind }
func (w *wrappedErr) Cause() error  { return w.cause }
