package fileserver

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// MinifierFunc transforms the full contents of a CSS or JS file.
// Returning an empty slice signals "could not usefully minify this",
// which the minifier stage treats as a failure.
type MinifierFunc func(src []byte) ([]byte, error)

// CompressorFunc writes the compressed form of src to dst.
type CompressorFunc func(dst io.Writer, src []byte) error

// minifierBackend and compressorBackend are the capability-registry
// entries populated at process startup: each backend declares the key
// it serves under (a content-type for minifiers, a coding name for
// compressors) plus the function that does the work.
type minifierBackend struct {
	ContentType string
	Minify      MinifierFunc
}

type compressorBackend struct {
	Name   string
	Suffix string
	Encode CompressorFunc
}

// capabilityRegistry is the process-wide set of available minifier and
// compressor backends. A Core's capabilitySet is a snapshot of the
// global registry taken at construction time: capabilities are
// detected once at startup and stored in immutable configuration.
type capabilityRegistry struct {
	mu          sync.RWMutex
	minifiers   map[string]minifierBackend
	compressors map[string]compressorBackend
}

var globalCapabilities = newCapabilityRegistry()

func newCapabilityRegistry() *capabilityRegistry {
	return &capabilityRegistry{
		minifiers:   make(map[string]minifierBackend),
		compressors: make(map[string]compressorBackend),
	}
}

// RegisterMinifier adds a minifier backend for a content-type. Intended
// to be called from init() of the package that wires a concrete
// minifier (see minify_backends.go); a duplicate registration panics,
// a fail-fast startup discipline rather than a silently overwritten
// backend.
func RegisterMinifier(contentType string, fn MinifierFunc) {
	globalCapabilities.mustRegisterMinifier(contentType, fn)
}

// RegisterCompressor adds a compressor backend under a coding name.
func RegisterCompressor(name, suffix string, fn CompressorFunc) {
	globalCapabilities.mustRegisterCompressor(name, suffix, fn)
}

func (r *capabilityRegistry) mustRegisterMinifier(contentType string, fn MinifierFunc) {
	key := strings.ToLower(strings.TrimSpace(contentType))
	if key == "" || fn == nil {
		panic("fileserver: invalid minifier registration")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.minifiers[key]; exists {
		panic("fileserver: minifier for " + key + " already registered")
	}
	r.minifiers[key] = minifierBackend{ContentType: key, Minify: fn}
}

func (r *capabilityRegistry) mustRegisterCompressor(name, suffix string, fn CompressorFunc) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || suffix == "" || fn == nil {
		panic("fileserver: invalid compressor registration")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.compressors[key]; exists {
		panic("fileserver: compressor for " + key + " already registered")
	}
	r.compressors[key] = compressorBackend{Name: key, Suffix: suffix, Encode: fn}
}

// snapshot captures the currently-registered backends as an immutable
// capabilitySet, copied into fresh maps. The maps carry no order;
// AvailableMinifiers and AvailableCompressors sort their own output.
func (r *capabilityRegistry) snapshot() capabilitySet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	minKeys := make([]string, 0, len(r.minifiers))
	for k := range r.minifiers {
		minKeys = append(minKeys, k)
	}
	sort.Strings(minKeys)
	minifiers := make(map[string]minifierBackend, len(minKeys))
	for _, k := range minKeys {
		minifiers[k] = r.minifiers[k]
	}

	compKeys := make([]string, 0, len(r.compressors))
	for k := range r.compressors {
		compKeys = append(compKeys, k)
	}
	sort.Strings(compKeys)
	compressors := make(map[string]compressorBackend, len(compKeys))
	for _, k := range compKeys {
		compressors[k] = r.compressors[k]
	}

	return capabilitySet{minifiers: minifiers, compressors: compressors}
}

// capabilitySet is the immutable, per-Core snapshot of available
// backends.
type capabilitySet struct {
	minifiers   map[string]minifierBackend
	compressors map[string]compressorBackend
}

func (s capabilitySet) minifierFor(contentType string) (minifierBackend, bool) {
	b, ok := s.minifiers[strings.ToLower(contentType)]
	return b, ok
}

func (s capabilitySet) compressorFor(name string) (compressorBackend, bool) {
	b, ok := s.compressors[strings.ToLower(name)]
	return b, ok
}

// AvailableMinifiers reports the content-types the process can
// minify, sorted. Intended for startup logging and a diagnostics
// endpoint, not for request handling.
func AvailableMinifiers() []string {
	snap := globalCapabilities.snapshot()
	keys := make([]string, 0, len(snap.minifiers))
	for k := range snap.minifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AvailableCompressors reports the coding names the process can
// produce, sorted.
func AvailableCompressors() []string {
	snap := globalCapabilities.snapshot()
	keys := make([]string, 0, len(snap.compressors))
	for k := range snap.compressors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
