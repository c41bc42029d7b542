// Package auth implements the OpenID Connect relying-party core: provider
// discovery, the authorization-code exchange, ID token verification against
// the provider's key set, and user provisioning from verified claims.
package auth
