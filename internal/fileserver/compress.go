package fileserver

import (
	"io"
	"os"
)

// runCompress ranks the client's Accept-Encoding codings, tries each
// in order against the registered compressors, and substitutes the
// first sidecar that is fresh or can be (re)produced. Unlike the
// minifier, failure on one coding doesn't abort the stage — it falls
// through to the next-preferred coding, and if every coding fails the
// representation is served uncompressed.
func runCompress(cfg *Config, warn Warner, rep *representation, acceptEncoding string) {
	if !cfg.Defaults.Compress {
		return
	}

	sourceAbs := rep.absPath(cfg.Root)
	sourceInfo, err := os.Stat(sourceAbs)
	if err != nil {
		return
	}

	for _, coding := range parseAcceptEncoding(acceptEncoding) {
		if coding.name == "identity" || coding.name == "*" {
			continue
		}

		backend, ok := cfg.capabilities.compressorFor(coding.name)
		if !ok {
			continue
		}

		candidate := rep.currentFile + backend.Suffix
		candidateAbs := joinUnderRoot(cfg.Root, candidate)

		if candidateInfo, statErr := os.Stat(candidateAbs); statErr == nil {
			// Same strict ">" freshness rule as the minifier: equal
			// timestamps favor the sidecar.
			if sourceInfo.ModTime().After(candidateInfo.ModTime()) {
				os.Remove(candidateAbs)
			} else {
				rep.currentFile = candidate
				rep.contentEncoding = backend.Name
				return
			}
		}

		src, readErr := os.ReadFile(sourceAbs)
		if readErr != nil {
			warn.warn("Can't read "+sourceAbs+" for compressing", nil)
			continue
		}

		if err := writeSidecarStreamLocked(candidateAbs, func(dst io.Writer) error {
			return backend.Encode(dst, src)
		}); err != nil {
			warn.warn("Failed compressing "+rep.currentFile+" with "+backend.Name+": "+err.Error(), nil)
			continue
		}

		rep.currentFile = candidate
		rep.contentEncoding = backend.Name
		return
	}
}
