// Package middleware implements the fixed-order request pipeline:
// Setup builds the per-request context and resolves the session,
// Logging emits entry and exit records, AuthGate rejects unauthenticated
// requests to protected routes. The order is load-bearing: each stage reads
// state an earlier stage attached to the request.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/authgate-io/authgate/internal/reqctx"
	"github.com/authgate-io/authgate/internal/requestid"
	"github.com/authgate-io/authgate/internal/web/apperr"
	"github.com/authgate-io/authgate/internal/web/session"
)

// Setup returns the first middleware stage. It issues the request id, builds
// the request context and attaches the session resolved from the session-id
// cookie. A request without a resolvable client address is a deployment
// error, not a user error, and fails with 500. A missing or unknown session
// cookie is normal; the request continues unauthenticated.
func Setup(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := requestid.New()
		if err != nil {
			return apperr.Internal("failed to issue request id", err)
		}

		if c.IP() == "" {
			return apperr.Internal("client address unavailable", nil)
		}

		c.Locals(reqctx.LocalsKey, reqctx.New(id, c))

		if sid := c.Cookies(session.CookieName); sid != "" {
			if sess, ok := sessions.Find(sid); ok {
				c.Locals(session.LocalsKey, sess)
			}
		}

		return c.Next()
	}
}
