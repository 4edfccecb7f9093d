package fileserver

// Warner is the process-wide diagnostic sink: every degraded-but-
// recovered failure (minifier failure, compressor failure, ETag
// read/write failure) is reported through it instead of crossing the
// core boundary as an error. A nil Warner silently drops warnings.
type Warner func(msg string, fields map[string]any)

func (w Warner) warn(msg string, fields map[string]any) {
	if w == nil {
		return
	}
	w(msg, fields)
}
