package oidc

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authgate-io/authgate/internal/auth"
	"github.com/authgate-io/authgate/internal/reqctx"
	"github.com/authgate-io/authgate/internal/uniuri"
	"github.com/authgate-io/authgate/internal/web/apperr"
	"github.com/authgate-io/authgate/internal/web/handler"
	"github.com/authgate-io/authgate/internal/web/session"
	"github.com/authgate-io/authgate/internal/web/state"
)

const (
	// LoginPath initiates the OIDC login flow.
	LoginPath = "/openid-connect"

	// CallbackPath receives the provider redirect with code and state.
	CallbackPath = LoginPath + "/callback"

	// stateKeyLen is the length of the opaque state-key cookie value.
	stateKeyLen = 24
)

// Service is the OIDC flow handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the OIDC flow handler.
var Handler = Service{}

// Init initializes the OIDC flow handler and registers its routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.OIDC == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)

	return nil
}

// Login initiates the login flow: it records a fresh pending login attempt
// server-side, hands the browser only the opaque state-key id, and redirects
// to the provider's authorization endpoint. Failures here are internal
// errors; this step never produces a user-facing auth rejection.
func (s *Service) Login(c *fiber.Ctx) error {
	var (
		stateToken = uniuri.NewLen(uniuri.TokenLen)
		nonce      = uniuri.NewLen(uniuri.TokenLen)
		stateKey   = uniuri.NewLen(stateKeyLen)
	)

	if err := s.deps.States.Put(stateKey, state.Entry{State: stateToken, Nonce: nonce}); err != nil {
		return apperr.Internal("failed to record pending login", err)
	}

	c.Cookie(session.BuildStateCookie(stateKey, s.deps.States.TTL()))

	return c.Redirect(s.deps.OIDC.AuthCodeURL(stateToken, nonce), fiber.StatusFound)
}

// Callback completes the login flow. CSRF state is validated and consumed
// before anything else: on mismatch or absence no token exchange happens and
// the response does not reveal which check failed. Only after the ID token
// verifies against the provider's key set is a session created.
func (s *Service) Callback(c *fiber.Ctx) error {
	lg := reqctx.MustFromCtx(c).Logger()

	var (
		code       = c.Query("code")
		stateParam = c.Query("state")
		stateKey   = c.Cookies(session.StateCookieName)
	)

	// consume the pending attempt unconditionally; single use either way
	entry, ok := s.deps.States.Take(stateKey)

	c.Cookie(session.ClearCookie(session.StateCookieName))

	if !ok || code == "" || stateParam == "" || entry.State != stateParam {
		lg.Warn().Msg("csrf state validation failed")
		return apperr.Unauthenticated("authentication failed")
	}

	rawIDToken, err := s.deps.OIDC.Exchange(c.UserContext(), code)
	if err != nil {
		lg.Error().Err(err).Msg("token exchange failed")
		return apperr.Internal("token exchange failed", err)
	}

	claims, err := s.deps.OIDC.VerifyIDToken(c.UserContext(), rawIDToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotVerified) {
			lg.Warn().Msg("id token rejected by key set")
			return apperr.Unauthenticated("authentication failed")
		}

		lg.Error().Err(err).Msg("id token verification failed")

		return apperr.Internal("id token verification failed", err)
	}

	users := auth.NewService(s.deps.DB)

	user, err := users.FindOrCreateUser(claims)
	if err != nil {
		lg.Error().Err(err).Msg("failed to provision user")
		return apperr.Internal("failed to provision user", err)
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		lg.Error().Err(err).Msg("failed to generate session id")
		return apperr.Internal("failed to generate session id", err)
	}

	data := session.Data{
		User: session.User{
			ID:    user.ID,
			Name:  user.Name,
			Roles: user.RoleNames(),
		},
	}

	if err = s.deps.Sessions.Write(sessionID, data); err != nil {
		lg.Error().Err(err).Msg("failed to write session")
		return apperr.Internal("failed to write session", err)
	}

	c.Cookie(session.BuildCookie(sessionID, s.deps.Sessions.TTL()))

	log.Info().Str("subject", user.Subject).Msg("user logged in via OIDC")

	return c.Redirect(s.deps.Cfg.Webserver.LandingPath, fiber.StatusFound)
}
