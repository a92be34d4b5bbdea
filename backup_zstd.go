//go:build zstd

package newfs

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func init() {
	registerCodec(CodecZSTD,
		func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		},
	)
}
