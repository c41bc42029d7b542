package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authgate-io/authgate/internal/web/apperr"
	"github.com/authgate-io/authgate/internal/web/session"
)

// AuthGate returns the third middleware stage, applied to protected routes
// only. Without a session it short-circuits with 401 and the handler never
// runs. With a session it invokes the handler and then re-issues the session
// cookie so an active user keeps sliding the expiration forward.
func AuthGate(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.FromCtx(c)
		if !ok {
			return apperr.Unauthenticated("authentication required")
		}

		if err := c.Next(); err != nil {
			return err
		}

		// slide the store entry along with the cookie
		if err := sessions.Write(sess.ID, sess.Data); err != nil {
			log.Warn().Err(err).Msg("failed to refresh session entry")
		}

		c.Cookie(session.BuildCookie(sess.ID, sessions.TTL()))

		return nil
	}
}
