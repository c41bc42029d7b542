package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrOIDCProviderURLEmpty error if the OIDC provider URL is missing.
	ErrOIDCProviderURLEmpty = errors.New("config auth.oidc.providerURL can not be empty")

	// ErrOIDCClientCredentialsEmpty error if client id or secret is missing.
	ErrOIDCClientCredentialsEmpty = errors.New("config auth.oidc client id and secret can not be empty")

	// ErrOIDCRedirectURLEmpty error if the OIDC redirect URL is missing.
	ErrOIDCRedirectURLEmpty = errors.New("config auth.oidc.redirectURL can not be empty")
)
