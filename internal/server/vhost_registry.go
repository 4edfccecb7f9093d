package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ido50/mccs/internal/fileserver"
)

// ErrHostUnmapped is returned by Registry.CoreFor when --vhost-mode is
// set and the request's Host header doesn't resolve to a subdirectory
// of root.
var ErrHostUnmapped = errors.New("host unmapped")

// Registry resolves a request's Host header to the fileserver.Core
// that should serve it. Outside --vhost-mode there is exactly one
// Core, built once and reused for every request/host. In --vhost-mode,
// root is a directory of per-host subdirectories; a Core is built
// lazily per host directory and cached, with routes discovered from
// the filesystem instead of declared in config.
type Registry struct {
	mu       sync.Mutex
	root     string
	vhost    bool
	template fileserver.Config
	warn     fileserver.Warner
	cores    map[string]*fileserver.Core
}

// NewRegistry builds a Registry. template is the Config to use for
// every host, with Root left unset — NewRegistry fills it in per host
// (or once, with root itself, outside vhost mode).
func NewRegistry(root string, vhost bool, template fileserver.Config, warn fileserver.Warner) (*Registry, error) {
	if root == "" {
		return nil, errors.New("root directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", abs)
	}

	return &Registry{
		root:     abs,
		vhost:    vhost,
		template: template,
		warn:     warn,
		cores:    make(map[string]*fileserver.Core),
	}, nil
}

// CoreFor returns the Core that should serve rawHost, building and
// caching it on first use. Outside vhost mode, rawHost is ignored and
// every request shares one Core rooted at the configured directory.
func (r *Registry) CoreFor(rawHost string) (*fileserver.Core, error) {
	if !r.vhost {
		return r.coreForDir(r.root, "")
	}

	host := normalizeHost(rawHost)
	if host == "" {
		return nil, ErrHostUnmapped
	}

	hostDir := filepath.Join(r.root, host)
	info, err := os.Stat(hostDir)
	if err != nil || !info.IsDir() {
		return nil, ErrHostUnmapped
	}

	return r.coreForDir(hostDir, host)
}

func (r *Registry) coreForDir(dir, cacheKey string) (*fileserver.Core, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if core, ok := r.cores[cacheKey]; ok {
		return core, nil
	}

	cfg := r.template
	cfg.Root = dir

	core, err := fileserver.NewCore(cfg, r.warn)
	if err != nil {
		return nil, err
	}
	r.cores[cacheKey] = core
	return core, nil
}

// normalizeHost strips a trailing port and dot, lower-cases the
// result, so a directory name like "example.com" matches both
// "example.com" and "example.com:8080" Host headers.
func normalizeHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	host := raw
	if strings.Contains(raw, ":") {
		if h, p, err := net.SplitHostPort(raw); err == nil {
			if _, err := strconv.Atoi(p); err == nil {
				host = h
			}
		}
	}

	host = strings.TrimSuffix(host, ".")
	return strings.ToLower(host)
}
