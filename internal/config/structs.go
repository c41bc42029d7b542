package config

import (
	"time"

	"github.com/authgate-io/authgate/internal/logger"
)

const (
	// DefaultSessionExpiryHours is used when webserver.session.expiryHours is unset.
	DefaultSessionExpiryHours = 2

	// DefaultStateTTLMinutes is used when auth.oidc.stateTTLMinutes is unset.
	DefaultStateTTLMinutes = 5

	// DefaultShutDownTime is the drain window in seconds before the listener stops.
	DefaultShutDownTime = 5
)

// Session settings.
type Session struct {
	// ExpiryHours is the session cookie and store lifetime in hours.
	ExpiryHours int `toml:"expiryHours"`
}

// Expiry returns the session lifetime as a duration.
func (s Session) Expiry() time.Duration {
	hours := s.ExpiryHours
	if hours <= 0 {
		hours = DefaultSessionExpiryHours
	}

	return time.Duration(hours) * time.Hour
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	DB        DB
	Log       logger.Log
	Auth      Auth
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string  // domain name for the webserver
	Port         int     // listening port for the webserver
	ShutDownTime int     // wait time for shutdown in seconds
	URL          string  // base url for the webserver
	LandingPath  string  // route to redirect to after a successful login
	Session      Session // session settings
}

// Auth groups the authentication settings.
type Auth struct {
	OIDC OIDCAuth
}

// OIDCAuth holds the OpenID Connect relying-party settings.
type OIDCAuth struct {
	// ProviderURL is the provider's issuer URL; the discovery document is
	// fetched from its well-known location.
	ProviderURL string
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// RedirectURL is the callback URL registered with the provider.
	RedirectURL string
	// Scopes are the OAuth2 scopes to request (default: openid profile email).
	Scopes []string
	// StateTTLMinutes bounds how long a pending login attempt stays valid.
	StateTTLMinutes int `toml:"stateTTLMinutes"`
}

// StateTTL returns the CSRF-state lifetime as a duration.
func (o OIDCAuth) StateTTL() time.Duration {
	minutes := o.StateTTLMinutes
	if minutes <= 0 {
		minutes = DefaultStateTTLMinutes
	}

	return time.Duration(minutes) * time.Minute
}
