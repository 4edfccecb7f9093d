package fileserver

import "fmt"

// statusKind names a fatal pipeline outcome that short-circuits to an
// error response. These are the only three statuses the core ever
// returns besides 200 and 304.
type statusKind int

const (
	statusOK statusKind = 0
	statusBadRequest statusKind = 400
	statusForbidden  statusKind = 403
	statusNotFound   statusKind = 404
)

// pipelineError carries a fatal statusKind out of the resolver (or, for
// the 403 case, out of the response builder when opening the selected
// file fails).
type pipelineError struct {
	kind   statusKind
	reason string
}

func (e *pipelineError) Error() string {
	return fmt.Sprintf("%s", e.reason)
}

func newError(kind statusKind, reason string) *pipelineError {
	return &pipelineError{kind: kind, reason: reason}
}

// reasonPhrase returns the canonical short reason phrase used as the
// plain-text body for error responses.
func reasonPhrase(kind statusKind) string {
	switch kind {
	case statusBadRequest:
		return "Bad Request"
	case statusForbidden:
		return "Forbidden"
	case statusNotFound:
		return "Not Found"
	default:
		return ""
	}
}
