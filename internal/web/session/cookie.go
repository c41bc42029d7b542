package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	// CookieName is the session cookie name.
	CookieName = "session-id"

	// StateCookieName is the CSRF state-key cookie name used during login.
	StateCookieName = "state-key"
)

// BuildCookie builds the session cookie. The attributes are non-negotiable
// security defaults: the cookie must never leak cross-site and must never be
// readable from script.
func BuildCookie(sessionID string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		MaxAge:   int(ttl.Seconds()),
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// BuildStateCookie builds the short-lived CSRF state-key cookie set at
// login initiation. It carries only the server-side correlation id, never
// the state token itself.
func BuildStateCookie(stateKey string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     StateCookieName,
		Value:    stateKey,
		MaxAge:   int(ttl.Seconds()),
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ClearCookie expires the named cookie with the same scoping attributes it
// was issued with.
func ClearCookie(name string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
