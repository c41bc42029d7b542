// Package uniuri generates cryptographically secure random strings suitable
// for use as opaque tokens. The OIDC flow uses it for CSRF state tokens,
// nonces and the state-key correlation id held in the login cookie.
package uniuri
