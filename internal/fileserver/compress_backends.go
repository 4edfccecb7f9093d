package fileserver

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

func init() {
	RegisterCompressor("gzip", ".gz", func(dst io.Writer, src []byte) error {
		w := gzip.NewWriter(dst)
		if _, err := w.Write(src); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})

	// The suffix is ".zip" for the deflate coding — not a conventional
	// deflate extension, kept for on-disk compatibility with existing
	// sidecar caches.
	RegisterCompressor("deflate", ".zip", func(dst io.Writer, src []byte) error {
		w := zlib.NewWriter(dst)
		if _, err := w.Write(src); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})

	RegisterCompressor("zstd", ".zstd", func(dst io.Writer, src []byte) error {
		w, err := zstd.NewWriter(dst)
		if err != nil {
			return err
		}
		if _, err := w.Write(src); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
}
