package fileserver

import (
	"os"
	"strings"
)

// runMinify only engages for text/css and application/javascript, and
// never re-minifies a file that already matches *.min.css/*.min.js —
// there is no double-minify.
func runMinify(cfg *Config, warn Warner, rep *representation) {
	if !cfg.Defaults.Minify {
		return
	}
	if rep.contentType != "text/css" && rep.contentType != "application/javascript" {
		return
	}
	if isAlreadyMinified(rep.currentFile) {
		return
	}

	minExt := minifiedSuffix(rep.contentType)
	if minExt == "" {
		return
	}

	candidate := minifiedCandidatePath(cfg, rep.currentFile, minExt)
	candidateAbs := joinUnderRoot(cfg.Root, candidate)
	sourceAbs := rep.absPath(cfg.Root)

	sourceInfo, err := os.Stat(sourceAbs)
	if err != nil {
		return
	}

	if candidateInfo, statErr := os.Stat(candidateAbs); statErr == nil {
		// Freshness uses a strict ">" comparison, so equal timestamps
		// favor the minified file.
		if sourceInfo.ModTime().After(candidateInfo.ModTime()) {
			os.Remove(candidateAbs)
		} else {
			rep.currentFile = candidate
			return
		}
	}

	backend, ok := cfg.capabilities.minifierFor(rep.contentType)
	if !ok {
		return
	}

	src, err := os.ReadFile(sourceAbs)
	if err != nil {
		warn.warn("Can't read "+sourceAbs+" for minifying", nil)
		return
	}

	minified, err := backend.Minify(src)
	if err != nil || len(minified) == 0 {
		if err != nil {
			warn.warn("Failed minifying "+rep.currentFile+": "+err.Error(), nil)
		}
		return
	}

	if err := writeSidecarLocked(candidateAbs, minified); err != nil {
		warn.warn("Failed writing "+candidateAbs+": "+err.Error(), nil)
		return
	}

	rep.currentFile = candidate
}

func isAlreadyMinified(currentFile string) bool {
	return strings.HasSuffix(currentFile, ".min.css") || strings.HasSuffix(currentFile, ".min.js")
}

func minifiedSuffix(contentType string) string {
	switch contentType {
	case "text/css":
		return ".min.css"
	case "application/javascript":
		return ".min.js"
	default:
		return ""
	}
}

// minifiedCandidatePath replaces the trailing .css/.js with the
// .min.css/.min.js suffix, optionally relocating into MinCacheDir with
// "/" flattened to "%2F" so a nested source path can't collide with
// another once flattened into a single cache directory.
func minifiedCandidatePath(cfg *Config, currentFile, minExt string) string {
	base := strings.TrimSuffix(currentFile, ".css")
	base = strings.TrimSuffix(base, ".js")
	withSuffix := base + minExt

	if cfg.MinCacheDir == "" {
		return withSuffix
	}

	encoded := strings.ReplaceAll(strings.TrimPrefix(withSuffix, "/"), "/", "%2F")
	return "/" + strings.TrimPrefix(cfg.MinCacheDir, "/") + "/" + encoded
}
