// Package main provides the entry point for the authgate service.
// It runs a web server using the Fiber framework that fronts an application
// with an OpenID Connect login flow: a fixed-order middleware pipeline builds
// a per-request context, logs entry and exit, and gates protected routes on a
// server-side session referenced by a hardened cookie.
package main
