package fileserver

import (
	"mime"
	"strings"
)

// StdlibMediaTypes is the default MediaTyper: a thin wrapper over the
// standard library's extension table (seeded from the system's
// mime.types plus Go's built-in fallbacks). The extension→media-type
// table is injected at construction so callers remain free to swap in
// something richer.
type StdlibMediaTypes struct{}

// TypeByExtension implements MediaTyper.
func (StdlibMediaTypes) TypeByExtension(ext string) string {
	t := mime.TypeByExtension(ext)
	if t == "" {
		return ""
	}
	// mime.TypeByExtension often appends a charset parameter (e.g.
	// "text/plain; charset=utf-8"); the policy selector owns charset
	// appending itself, so strip any parameters here.
	t, _, _ = strings.Cut(t, ";")
	return strings.TrimSpace(t)
}
