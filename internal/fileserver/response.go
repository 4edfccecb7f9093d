package fileserver

import (
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// buildResponse assembles the final headers and body for a resolved
// representation. Opening current_file failing is a 403, not a 503 —
// permission errors and "vanished between stat and open" races are
// indistinguishable from the caller's point of view, so both reuse the
// traversal/unreadable status.
func buildResponse(cfg *Config, rep *representation) (*Response, error) {
	fileAbs := rep.absPath(cfg.Root)

	f, err := os.Open(fileAbs)
	if err != nil {
		return nil, newError(statusForbidden, "Forbidden")
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newError(statusForbidden, "Forbidden")
	}

	resp := &Response{Status: http.StatusOK, Body: f}

	if rep.contentEncoding != "" {
		resp.set("Content-Encoding", rep.contentEncoding)
	}

	resp.set("Content-Length", strconv.FormatInt(info.Size(), 10))
	resp.set("Content-Type", contentTypeHeader(rep.contentType, cfg.Encoding))
	resp.set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))

	if rep.validFor >= 0 {
		resp.set("Expires", info.ModTime().Add(time.Duration(rep.validFor)*time.Second).UTC().Format(http.TimeFormat))
	} else {
		resp.set("Expires", time.Unix(0, 0).UTC().Format(http.TimeFormat))
	}

	resp.set("Cache-Control", strings.Join(rep.cacheControl, ", "))

	if rep.etag != "" {
		resp.set("ETag", rep.etag)
	}

	resp.set("Vary", "Accept-Encoding")

	return resp, nil
}

// contentTypeHeader appends "; charset=<encoding>" for textual media
// types.
func contentTypeHeader(contentType, encoding string) string {
	if isTextualType(contentType) {
		return contentType + "; charset=" + encoding
	}
	return contentType
}

func isTextualType(contentType string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch contentType {
	case "application/json", "application/xml", "application/javascript":
		return true
	default:
		return false
	}
}

// errorResponse builds the short text/plain body used for 400/403/404.
func errorResponse(kind statusKind) *Response {
	body := reasonPhrase(kind)
	resp := &Response{
		Status: int(kind),
		Body:   io.NopCloser(strings.NewReader(body)),
	}
	resp.set("Content-Type", "text/plain")
	resp.set("Content-Length", strconv.Itoa(len(body)))
	return resp
}

// notModifiedResponse is the 304 returned by the Conditional Evaluator:
// empty body, no Content-Length/Content-Type.
func notModifiedResponse() *Response {
	return &Response{Status: http.StatusNotModified}
}
