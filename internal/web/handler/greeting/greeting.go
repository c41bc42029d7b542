// Package greeting provides the protected example endpoint. It demonstrates
// the full pipeline: it only runs behind the auth gate and answers with the
// session user's name.
package greeting

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/authgate-io/authgate/internal/reqctx"
	"github.com/authgate-io/authgate/internal/web/apperr"
	"github.com/authgate-io/authgate/internal/web/handler"
	"github.com/authgate-io/authgate/internal/web/middleware"
	"github.com/authgate-io/authgate/internal/web/session"
)

// Path is the path to the greeting endpoint.
const Path = "/greeting"

// Response is the greeting response body.
type Response struct {
	Greeting string `json:"greeting"`
}

// Service is the greeting handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the greeting handler.
var Handler = Service{}

// Init initializes the greeting handler behind the auth gate.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Get(Path, middleware.AuthGate(deps.Sessions), s.Get)

	return nil
}

// Get greets the authenticated user.
func (s *Service) Get(c *fiber.Ctx) error {
	sess, ok := session.FromCtx(c)
	if !ok {
		// unreachable behind the gate; kept as a guard for direct registration
		return apperr.Unauthenticated("authentication required")
	}

	lg := reqctx.MustFromCtx(c).Logger()
	lg.Info().Msg("hello world")

	return c.JSON(Response{
		Greeting: fmt.Sprintf("hello, %s!", sess.Data.User.Name),
	})
}
