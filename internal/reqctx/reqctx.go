// Package reqctx implements the per-request context carried through the
// middleware chain. The context is built once by the setup middleware and
// read-only afterwards; its creation timestamp is always the one embedded in
// the request id, never supplied separately.
package reqctx

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/authgate-io/authgate/internal/requestid"
)

// LocalsKey is the fiber.Ctx Locals key under which the context is stored.
const LocalsKey = "reqctx"

// Context is the immutable per-request state.
type Context struct {
	// ID is the time-ordered unique request id.
	ID uuid.UUID
	// CreatedAt is derived from ID; see requestid.Timestamp.
	CreatedAt  time.Time
	Method     string
	Path       string
	RemoteAddr string
	UserAgent  string
	Cookie     string
}

// New builds a Context from the request id and the inbound request.
// CreatedAt is decoded from the id so both can never disagree.
func New(id uuid.UUID, c *fiber.Ctx) *Context {
	return &Context{
		ID:         id,
		CreatedAt:  requestid.Timestamp(id),
		Method:     c.Method(),
		Path:       c.Path(),
		RemoteAddr: c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
		Cookie:     c.Get(fiber.HeaderCookie),
	}
}

// Logger returns a zerolog logger pre-seeded with the context's structured
// fields. Every record emitted through it carries the request id for
// correlation; write failures are swallowed by zerolog and never reach the
// request handling path.
func (rc *Context) Logger() zerolog.Logger {
	return log.With().
		Str("req_id", rc.ID.String()).
		Time("req_ts", rc.CreatedAt).
		Str("method", rc.Method).
		Str("uri", rc.Path).
		Str("remote_addr", rc.RemoteAddr).
		Str(fiber.HeaderUserAgent, rc.UserAgent).
		Logger()
}

// FromCtx returns the context stored by the setup middleware.
func FromCtx(c *fiber.Ctx) (*Context, bool) {
	rc, ok := c.Locals(LocalsKey).(*Context)
	return rc, ok
}

// MustFromCtx returns the stored context or a zero-value placeholder when the
// setup middleware did not run. Handlers use this for logging only, so a
// placeholder is safer than a panic.
func MustFromCtx(c *fiber.Ctx) *Context {
	if rc, ok := FromCtx(c); ok {
		return rc
	}

	return &Context{Method: c.Method(), Path: c.Path()}
}
