// Package daemon assembles the process: database, key-value stores, the OIDC
// provider and the web service.
package daemon

import (
	"context"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	storagememory "github.com/gofiber/storage/memory"
	storagemysql "github.com/gofiber/storage/mysql"
	storagepostgres "github.com/gofiber/storage/postgres"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/authgate-io/authgate/internal/auth"
	"github.com/authgate-io/authgate/internal/config"
	"github.com/authgate-io/authgate/internal/db/dsn"
	"github.com/authgate-io/authgate/internal/db/models"
	"github.com/authgate-io/authgate/internal/web"
	"github.com/authgate-io/authgate/internal/web/handler"
	"github.com/authgate-io/authgate/internal/web/session"
	"github.com/authgate-io/authgate/internal/web/state"
)

const (
	sessionTable = "sessions"
	stateTable   = "oidc_states"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start()
}

// New creates a new Daemon instance with the provided configuration.
// The OIDC provider is constructed eagerly: a gateway that cannot reach its
// provider's discovery document has nothing useful to serve.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	sessions := session.NewStore(
		openStorage(cfg, sessionTable),
		cfg.Webserver.Session.Expiry(),
	)

	states := state.NewStore(
		openStorage(cfg, stateTable),
		cfg.Auth.OIDC.StateTTL(),
	)

	provider, err := auth.NewOIDCProvider(context.Background(), &auth.OIDCConfig{
		ProviderURL:  cfg.Auth.OIDC.ProviderURL,
		ClientID:     cfg.Auth.OIDC.ClientID,
		ClientSecret: cfg.Auth.OIDC.ClientSecret,
		RedirectURL:  cfg.Auth.OIDC.RedirectURL,
		Scopes:       cfg.Auth.OIDC.Scopes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize OIDC provider")
	}

	log.Info().Str("provider", cfg.Auth.OIDC.ProviderURL).Msg("OIDC provider initialized")

	deps := &handler.Deps{
		Cfg:      cfg,
		DB:       db,
		Sessions: sessions,
		States:   states,
		OIDC:     provider,
	}

	return &Daemon{
		webService: web.New(cfg, db, deps),
	}, nil
}

// openDB opens the gorm connection for the configured driver.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DB.Driver {
	case config.DBDriverPostgres:
		return gorm.Open(gormpostgres.Open(dsn.Create(cfg)), &gorm.Config{})
	case config.DBDriverSQLite:
		return gorm.Open(sqlite.Open(dsn.Create(cfg)), &gorm.Config{})
	default:
		return gorm.Open(gormmysql.Open(dsn.Create(cfg)), &gorm.Config{})
	}
}

// openStorage opens the key-value storage backend for the configured driver.
// The sqlite driver is for development; its stores live in process memory.
func openStorage(cfg *config.Config, table string) storage.Storage {
	switch cfg.DB.Driver {
	case config.DBDriverPostgres:
		return storagepostgres.New(storagepostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			Username: cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			Table:    table,
		})
	case config.DBDriverSQLite:
		return storagememory.New()
	default:
		return storagemysql.New(storagemysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		})
	}
}
