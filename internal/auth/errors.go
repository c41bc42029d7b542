package auth

import "errors"

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrNoJWKSURL is returned when the discovery document lacks a jwks_uri field.
	ErrNoJWKSURL = errors.New("no jwks_uri in discovery document")

	// ErrTokenNotVerified is returned when no key in the provider's current
	// key set verifies the ID token. This is an authentication failure,
	// distinct from CSRF state rejection and from transport errors.
	ErrTokenNotVerified = errors.New("id token not verified by any provider key")

	// ErrNoSubjectClaim is returned when a verified token carries no sub claim.
	ErrNoSubjectClaim = errors.New("no sub claim in id token")

	// ErrNoExpiryClaim is returned when a verified token carries no exp claim.
	ErrNoExpiryClaim = errors.New("no exp claim in id token")
)
