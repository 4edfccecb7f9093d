package fileserver

import (
	"fmt"
	"path/filepath"
)

// MediaTyper maps a dot-prefixed extension to a media type. The core
// never guesses a content-type on its own; it consults an instance
// injected at construction.
type MediaTyper interface {
	TypeByExtension(ext string) string
}

// Defaults holds the baseline cache policy and feature toggles applied
// before any per-extension override. ValidFor is a pointer so an
// explicitly-configured "defaults.valid_for: 0" is distinguishable
// from "not configured", the same reason TypeOverride.ValidFor below
// is a pointer.
type Defaults struct {
	ValidFor     *int
	CacheControl []string
	Minify       bool
	Compress     bool
	ETag         bool
}

// DefaultDefaults returns the documented defaults: 86400 seconds,
// ["public"], and every feature flag enabled.
func DefaultDefaults() Defaults {
	validFor := 86400
	return Defaults{
		ValidFor:     &validFor,
		CacheControl: []string{"public"},
		Minify:       true,
		Compress:     true,
		ETag:         true,
	}
}

// TypeOverride is a per-extension override of the default cache policy
// and/or content type, keyed by dot-prefixed extension in Config.Types.
type TypeOverride struct {
	ContentType  string
	ValidFor     *int
	CacheControl []string
}

// Config is the immutable, per-process configuration of a fileserver
// Core. Nothing under Root may be served once Config is built unless
// it resolves strictly beneath Root (see resolver.go).
type Config struct {
	// Root is the absolute directory under which every served file
	// must reside.
	Root string

	// Encoding is the character set appended to text/JSON/XML/JS
	// media types; defaults to "UTF-8".
	Encoding string

	Defaults Defaults

	// Types overrides Defaults per dot-prefixed extension, e.g. ".less".
	Types map[string]TypeOverride

	// MinCacheDir, if non-empty, is a directory relative to Root into
	// which minified outputs are written and from which they are read
	// exclusively, instead of sitting beside their source.
	MinCacheDir string

	// IndexFiles are tried, in order, when a resolved path is a
	// directory.
	IndexFiles []string

	// MediaTypes resolves an extension to a content-type when no Types
	// override applies. Required.
	MediaTypes MediaTyper

	// Ignore, if set, rejects logical paths that match one of its
	// patterns with the same "forbidden" outcome as a traversal
	// attempt (see DESIGN.md Open Question #1).
	Ignore IgnoreMatcher

	// capabilities is populated by NewCore from the registered
	// minifier/compressor backends; it is not user-settable.
	capabilities capabilitySet
}

// IgnoreMatcher decides whether a logical path should never be served.
type IgnoreMatcher interface {
	Match(logicalPath string) bool
}

// Validate fills in documented defaults and checks invariants that must
// hold before a Core can be constructed.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("fileserver: root directory is required")
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("fileserver: resolve root: %w", err)
	}
	c.Root = abs

	if c.Encoding == "" {
		c.Encoding = "UTF-8"
	}
	if len(c.IndexFiles) == 0 {
		c.IndexFiles = []string{"index.html"}
	}
	if c.Defaults.ValidFor == nil && c.Defaults.CacheControl == nil {
		c.Defaults = DefaultDefaults()
	}
	if c.MediaTypes == nil {
		return fmt.Errorf("fileserver: media type lookup is required")
	}
	return nil
}
