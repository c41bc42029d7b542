// Package oidc implements the HTTP-facing steps of the Authorization Code
// flow: login initiation with CSRF state issuance, and the callback that
// validates state, exchanges the code, verifies the ID token and issues the
// session.
package oidc
