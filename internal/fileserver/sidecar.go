package fileserver

import (
	"io"
	"os"
	"path/filepath"
)

// writeSidecarLocked creates (or truncates) path, takes an exclusive
// advisory lock, writes data in full, then closes. Concurrent writers
// to the same candidate are serialized by the lock; last writer wins,
// but both writers produce equivalent output. Locking happens on the
// destination file itself, so a reader that opens the same path either
// blocks behind the writer's exclusive lock or observes the file
// before this write started; it never observes a torn write.
func writeSidecarLocked(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockExclusive(f); err != nil {
		return err
	}
	defer unlock(f)

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	return nil
}

// writeSidecarStreamLocked is the streaming counterpart used by the
// compressor, which writes through a codec writer rather than a single
// byte slice.
func writeSidecarStreamLocked(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockExclusive(f); err != nil {
		return err
	}
	defer unlock(f)

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return encode(f)
}

// readSidecarLocked reads a whole sidecar file under a shared advisory
// lock, returning its bytes. Used by the ETag store; the
// minifier/compressor stages only need freshness via stat, not the
// sidecar's content, so they don't call this.
func readSidecarLocked(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := lockShared(f); err != nil {
		return nil, err
	}
	defer unlock(f)

	return io.ReadAll(f)
}
