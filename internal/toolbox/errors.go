package toolbox

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"google.golang.org/api/googleapi"
)

// Kind identifies the failure class of a dispatch. The set is stable
// across all services so callers never have to inspect upstream errors.
type Kind string

const (
	// KindValidation indicates malformed or missing arguments. Raised
	// locally, before any network call.
	KindValidation Kind = "validation_error"

	// KindAuth indicates the token refresh exchange was rejected.
	KindAuth Kind = "auth_error"

	// KindNotFound indicates a referenced resource (tool, message,
	// event, file) does not exist.
	KindNotFound Kind = "not_found"

	// KindUnsupportedType indicates a Drive file type with no safe
	// text export.
	KindUnsupportedType Kind = "unsupported_type"

	// KindSend indicates email composition or delivery was rejected.
	KindSend Kind = "send_error"

	// KindUpstream is a generic non-2xx from a Google API not
	// otherwise classified.
	KindUpstream Kind = "upstream_error"

	// KindTimeout indicates a read operation was aborted by the
	// caller-side timeout. No partial state is left behind.
	KindTimeout Kind = "timeout"

	// KindIndeterminate indicates a mutating call timed out; its
	// upstream effect is unknown and it must not be retried blindly.
	KindIndeterminate Kind = "indeterminate"
)

// Error is a classified tool failure. UpstreamStatus is the HTTP status
// of the originating Google API response, or 0 when the failure never
// reached an upstream service.
type Error struct {
	Kind           Kind
	Message        string
	UpstreamStatus int
}

func (e *Error) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("%s: %s (upstream status %d)", e.Kind, e.Message, e.UpstreamStatus)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds a classified error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Classify maps an arbitrary error onto the taxonomy. Already-classified
// errors pass through unchanged; googleapi errors are mapped by status
// code; context and transport timeouts become KindTimeout; everything
// else is a generic upstream failure.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var te *Error
	if errors.As(err, &te) {
		return te
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTimeout, Message: err.Error()}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		kind := KindUpstream
		switch gerr.Code {
		case 404:
			kind = KindNotFound
		case 408, 504:
			kind = KindTimeout
		}
		return &Error{Kind: kind, Message: gerr.Message, UpstreamStatus: gerr.Code}
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &Error{Kind: KindTimeout, Message: err.Error()}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: KindTimeout, Message: err.Error()}
	}

	return &Error{Kind: KindUpstream, Message: err.Error()}
}

// retryable reports whether a classified error is transient: a network
// failure that never produced a status, a 5xx, or a rate-limit response.
// Only read operations consult this; mutations are never retried.
func retryable(e *Error) bool {
	if e == nil {
		return false
	}
	if e.Kind != KindUpstream {
		return false
	}
	return e.UpstreamStatus == 0 || e.UpstreamStatus == 429 || e.UpstreamStatus >= 500
}
