// Package logout clears the server-side session and the session cookie.
package logout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	oidchandler "github.com/authgate-io/authgate/internal/web/handler/auth/oidc"

	"github.com/authgate-io/authgate/internal/web/handler"
	"github.com/authgate-io/authgate/internal/web/session"
)

// Path is the path to the logout endpoint.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	// logout route (outside auth gate protection)
	app.Get(Path, s.Logout)

	return nil
}

// Logout deletes the session store entry, clears the cookie and sends the
// browser back to login. A request without a session is not an error.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(session.CookieName); sessionID != "" {
		if err := s.deps.Sessions.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.Cookie(session.ClearCookie(session.CookieName))

	return c.Redirect(oidchandler.LoginPath, fiber.StatusFound)
}
