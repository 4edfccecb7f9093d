package fileserver

import (
	"path"
	"strconv"
	"strings"
)

// selectPolicy resolves content-type precedence, assembles the cache
// policy (later steps override earlier ones), computes shouldETag, and
// prepends max-age.
func selectPolicy(cfg *Config, logicalPath string) (contentType, ext string, validFor int, cacheControl []string, shouldETag bool) {
	ext = extensionOf(logicalPath)
	override, hasOverride := cfg.Types[ext]

	contentType = resolveContentType(cfg, ext, override, hasOverride)

	validFor = 86400
	cacheControl = []string{"public"}

	if cfg.Defaults.ValidFor != nil {
		validFor = *cfg.Defaults.ValidFor
	}
	if len(cfg.Defaults.CacheControl) > 0 {
		cacheControl = append([]string(nil), cfg.Defaults.CacheControl...)
	}

	if hasOverride {
		if override.ValidFor != nil {
			validFor = *override.ValidFor
		}
		if len(override.CacheControl) > 0 {
			cacheControl = append([]string(nil), override.CacheControl...)
		}
	}

	shouldETag = cfg.Defaults.ETag && !containsDirective(cacheControl, "no-store")

	if !containsDirective(cacheControl, "no-store") {
		cacheControl = append([]string{maxAgeDirective(validFor)}, cacheControl...)
	}

	return contentType, ext, validFor, cacheControl, shouldETag
}

func resolveContentType(cfg *Config, ext string, override TypeOverride, hasOverride bool) string {
	if hasOverride && override.ContentType != "" {
		return override.ContentType
	}
	if cfg.MediaTypes != nil {
		if t := cfg.MediaTypes.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "text/plain"
}

// extensionOf returns the suffix starting at the final "." of the
// logical path's base name, or "" if there is none.
func extensionOf(logicalPath string) string {
	base := path.Base(logicalPath)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return base[idx:]
}

func containsDirective(directives []string, name string) bool {
	for _, d := range directives {
		if d == name {
			return true
		}
	}
	return false
}

func maxAgeDirective(validFor int) string {
	return "max-age=" + strconv.Itoa(validFor)
}
