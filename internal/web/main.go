// Package web wires the fiber application: the fixed-order middleware
// pipeline, the OIDC flow routes and the protected API.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authgate-io/authgate/internal/config"
	"github.com/authgate-io/authgate/internal/web/apperr"
	"github.com/authgate-io/authgate/internal/web/handler"
	oidchandler "github.com/authgate-io/authgate/internal/web/handler/auth/oidc"
	"github.com/authgate-io/authgate/internal/web/handler/greeting"
	"github.com/authgate-io/authgate/internal/web/handler/logout"
	"github.com/authgate-io/authgate/internal/web/middleware"
)

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	db    *gorm.DB
	alive atomic.Bool
}

// Start starts the web service on the configured port.
func (s *Service) Start() error {
	var doneFiber = make(chan bool)

	addr := fmt.Sprintf(":%d", s.cfg.Webserver.Port)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail checkalive first, so the
	// load balancer removes this pod from active targets before we stop.
	log.Info().Msgf(
		"graceful shutdown: return 503 on %s for %d seconds",
		middleware.CheckAliveURI,
		s.cfg.Webserver.ShutDownTime,
	)

	s.alive.Store(false)
	time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and collaborators.
func New(cfg *config.Config, db *gorm.DB, deps *handler.Deps) *Service {
	if cfg == nil || db == nil || deps == nil {
		panic("cfg, db and deps cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			AppName:       "authgate",
			CaseSensitive: true,
			Immutable:     true,
			ErrorHandler:  apperr.ErrorHandler,
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	// middleware pipeline; the order is fixed (see internal/web/middleware)
	app.Use(middleware.Setup(deps.Sessions))
	app.Use(middleware.Logging(cfg.Log))

	// liveness endpoint, outside the auth gate
	app.Get(middleware.CheckAliveURI, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusNoContent)
	})

	// init handlers (they register their own routes)
	for name, h := range map[string]handler.Service{
		"oidc":     &oidchandler.Handler,
		"greeting": &greeting.Handler,
		"logout":   &logout.Handler,
	} {
		if err := h.Init(app, deps); err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("failed to init handler")
		}
	}

	// redirect root to the protected landing route
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(cfg.Webserver.LandingPath, fiber.StatusFound)
	})

	return service
}
