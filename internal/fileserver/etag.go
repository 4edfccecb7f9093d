package fileserver

import (
	"os"
	"strconv"
	"strings"
	"syscall"
)

// runETag computes and caches the ETag for the file about to be
// served. An ETag is keyed by current_file, not logical_path, so a
// request served from a minified/compressed sidecar gets an ETag for
// that sidecar's identity, not the source's.
func runETag(cfg *Config, warn Warner, rep *representation) {
	if !rep.shouldETag {
		return
	}

	fileAbs := rep.absPath(cfg.Root)
	fileInfo, err := os.Stat(fileAbs)
	if err != nil {
		return
	}

	sidecarAbs := fileAbs + ".etag"

	sidecarInfo, statErr := os.Stat(sidecarAbs)
	if statErr == nil {
		if !sidecarInfo.ModTime().Before(fileInfo.ModTime()) {
			data, readErr := readSidecarLocked(sidecarAbs)
			if readErr == nil {
				rep.etag = strings.TrimRight(string(data), "\n")
				return
			}
			warn.warn("Can't open "+sidecarAbs+" for reading", nil)
			return
		}
		os.Remove(sidecarAbs)
	}

	etag := computeETag(fileInfo)

	if err := writeSidecarLocked(sidecarAbs, []byte(etag+"\n")); err != nil {
		warn.warn("Can't open "+sidecarAbs+" for writing", nil)
		return
	}

	rep.etag = etag
}

// computeETag builds the strong tag "<hex(inode)>-<hex(mtime)>-<hex(size)>"
// described in the GLOSSARY. The server owns both the source and its
// derived artifacts' lifecycle, so there's no same-second-rewrite case
// that would call for a weak tag.
func computeETag(info os.FileInfo) string {
	var inode uint64
	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		inode = sys.Ino
	}
	return strconv.FormatUint(inode, 16) + "-" +
		strconv.FormatInt(info.ModTime().Unix(), 16) + "-" +
		strconv.FormatInt(info.Size(), 16)
}
