// Package apperr defines the request error taxonomy and the outermost fiber
// error handler. Internal failures are rendered as a uniform opaque response
// carrying only the request id, so support can correlate log records without
// leaking internals to the client.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/authgate-io/authgate/internal/reqctx"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindInternal covers configuration errors, transport failures against
	// the provider and anything unexpected. Rendered as 500.
	KindInternal Kind = iota
	// KindUnauthenticated covers missing sessions, CSRF state mismatches and
	// failed token verification. Rendered as 401.
	KindUnauthenticated
	// KindForbidden covers authorization rejections with a message. Rendered as 403.
	KindForbidden
)

// Error is a typed request failure propagated through the middleware chain.
type Error struct {
	Kind Kind
	Msg  string // internal message, logged but not shown for KindInternal
	Err  error  // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}

	return e.Msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Internal wraps a cause as an internal/unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// Unauthenticated builds a 401-class failure.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// Forbidden builds a 403-class failure.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// response is the uniform error body.
type response struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler is the app-level fiber error handler. It renders typed errors
// by kind and everything else as an opaque 500; no stack traces or internal
// messages ever reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		reqID string
		appEr *Error
		fibEr *fiber.Error
	)

	if rc, ok := reqctx.FromCtx(c); ok {
		reqID = rc.ID.String()
	}

	switch {
	case errors.As(err, &appEr):
		msg := appEr.Msg
		if appEr.Kind == KindInternal {
			msg = "internal server error"
		}

		return c.Status(appEr.Status()).JSON(response{Error: msg, RequestID: reqID})
	case errors.As(err, &fibEr):
		return c.Status(fibEr.Code).JSON(response{Error: fibEr.Message, RequestID: reqID})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(response{Error: "internal server error", RequestID: reqID})
	}
}
