//go:build xz

package newfs

import (
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	registerCodec(CodecXZ,
		func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(xr), nil
		},
	)
}
