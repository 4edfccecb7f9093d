package fileserver

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// resolve validates the request path, maps it to a filesystem path
// under root, rejects traversal, classifies file/directory/absent, and
// tries index files for directories.
func resolve(cfg *Config, rawPath string) (string, error) {
	if strings.IndexByte(rawPath, 0) >= 0 {
		return "", newError(statusBadRequest, "Bad Request")
	}

	segments := strings.Split(rawPath, "/")
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	for _, seg := range segments {
		if seg == ".." {
			return "", newError(statusForbidden, "Forbidden")
		}
	}

	logical := "/" + path.Join(segments...)
	if logical == "/." {
		logical = "/"
	}

	return resolveLogical(cfg, logical, 0)
}

const maxIndexDepth = 8

func resolveLogical(cfg *Config, logical string, depth int) (string, error) {
	if depth > maxIndexDepth {
		return "", newError(statusForbidden, "Forbidden")
	}

	if cfg.Ignore != nil && cfg.Ignore.Match(logical) {
		return "", newError(statusForbidden, "Forbidden")
	}

	fsPath := joinUnderRoot(cfg.Root, logical)

	info, err := os.Stat(fsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", newError(statusNotFound, "Not Found")
		}
		return "", newError(statusForbidden, "Forbidden")
	}

	if info.Mode().IsRegular() {
		if !readable(fsPath) {
			return "", newError(statusForbidden, "Forbidden")
		}
		return logical, nil
	}

	if info.IsDir() {
		for _, name := range cfg.IndexFiles {
			candidate := path.Join(logical, name)
			if logical == "/" {
				candidate = "/" + name
			}
			candidatePath := joinUnderRoot(cfg.Root, candidate)
			candidateInfo, statErr := os.Stat(candidatePath)
			if statErr != nil || !candidateInfo.Mode().IsRegular() {
				continue
			}
			if !readable(candidatePath) {
				continue
			}
			return resolveLogical(cfg, candidate, depth+1)
		}
		return "", newError(statusForbidden, "Forbidden")
	}

	return "", newError(statusForbidden, "Forbidden")
}

// joinUnderRoot maps a sanitized logical path (leading "/", no ".."
// segments) to an absolute filesystem path under root, using the
// native path separator. Paths are always sliced on "/" regardless of
// host OS before this join happens, so a backslash in a segment is
// just a literal filename character, never a traversal vector.
func joinUnderRoot(root, logical string) string {
	rel := strings.TrimPrefix(logical, "/")
	return filepath.Join(root, filepath.FromSlash(rel))
}

func readable(fsPath string) bool {
	f, err := os.Open(fsPath)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
