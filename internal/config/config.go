// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("AUTHGATE_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applySecretEnv(&c)
	c = WithDefaults(c)

	return c, validate(c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge config from env")
	}

	return c, nil
}

// applySecretEnv overrides credential fields from dedicated environment
// variables, so secrets never have to live in the toml file.
func applySecretEnv(c *Config) {
	if v := os.Getenv("AUTHGATE_OIDC_CLIENT_ID"); v != "" {
		c.Auth.OIDC.ClientID = v
	}

	if v := os.Getenv("AUTHGATE_OIDC_CLIENT_SECRET"); v != "" {
		c.Auth.OIDC.ClientSecret = v
	}

	if v := os.Getenv("AUTHGATE_OIDC_REDIRECT_URL"); v != "" {
		c.Auth.OIDC.RedirectURL = v
	}

	if v := os.Getenv("AUTHGATE_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings for authgate.
func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.OIDC.ProviderURL == "" {
		return errors.Wrap(ErrOIDCProviderURLEmpty, invalidErrMessage)
	}

	if c.Auth.OIDC.ClientID == "" || c.Auth.OIDC.ClientSecret == "" {
		return errors.Wrap(ErrOIDCClientCredentialsEmpty, invalidErrMessage)
	}

	if c.Auth.OIDC.RedirectURL == "" {
		return errors.Wrap(ErrOIDCRedirectURLEmpty, invalidErrMessage)
	}

	return nil
}

// WithDefaults fills unset optional settings.
func WithDefaults(c Config) Config {
	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = DefaultShutDownTime
	}

	if c.Webserver.LandingPath == "" {
		c.Webserver.LandingPath = "/greeting"
	}

	return c
}
