package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/authgate-io/authgate/internal/auth"
	"github.com/authgate-io/authgate/internal/config"
	"github.com/authgate-io/authgate/internal/web/session"
	"github.com/authgate-io/authgate/internal/web/state"
)

// Deps bundles the shared collaborators handed to every handler at init.
// All of them are constructed once at startup and immutable afterwards.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Sessions *session.Store
	States   *state.Store
	OIDC     *auth.OIDCProvider
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
