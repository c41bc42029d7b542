package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// OIDCConfig holds OpenID Connect (OIDC) relying-party configuration.
type OIDCConfig struct {
	// ProviderURL is the OIDC provider's issuer URL (e.g., "https://accounts.google.com").
	ProviderURL string
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// RedirectURL is the OAuth2 callback URL where the provider redirects after authentication.
	RedirectURL string
	// Scopes are the OAuth2 scopes to request (default: ["openid", "profile", "email"]).
	Scopes []string
}

// IdentityClaims is the verified identity extracted from an ID token. It is
// only ever materialized after the token's signature verified against the
// provider's current key set and the audience check passed.
type IdentityClaims struct {
	Subject   string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// OIDCProvider runs the relying-party side of the Authorization Code flow.
// The discovery document is fetched once at construction and cached for the
// process lifetime; the key set is fetched per verification.
type OIDCProvider struct {
	config   *OIDCConfig
	provider *oidc.Provider
	oauth2   oauth2.Config
	jwksURL  string
	client   *http.Client
}

// NewOIDCProvider fetches the provider's discovery document and prepares the
// OAuth2 exchange configuration. A discovery document without a jwks_uri is
// a configuration error: tokens could never be verified.
func NewOIDCProvider(ctx context.Context, config *OIDCConfig) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, config.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	var disco struct {
		JWKSURL string `json:"jwks_uri"`
	}

	if err = provider.Claims(&disco); err != nil {
		return nil, fmt.Errorf("failed to parse discovery document: %w", err)
	}

	if disco.JWKSURL == "" {
		return nil, ErrNoJWKSURL
	}

	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	oauth2Config := oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       scopes,
	}

	client := http.DefaultClient
	if hc, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok {
		client = hc
	}

	return &OIDCProvider{
		config:   config,
		provider: provider,
		oauth2:   oauth2Config,
		jwksURL:  disco.JWKSURL,
		client:   client,
	}, nil
}

// AuthCodeURL returns the provider authorization URL carrying the CSRF state
// token, the per-login nonce and offline access type.
func (p *OIDCProvider) AuthCodeURL(state, nonce string) string {
	return p.oauth2.AuthCodeURL(state, oidc.Nonce(nonce), oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for the raw ID token at the
// provider's token endpoint.
func (p *OIDCProvider) Exchange(ctx context.Context, code string) (string, error) {
	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return "", ErrNoIDToken
	}

	return rawIDToken, nil
}

// VerifyIDToken fetches the provider's current key set and attempts RS256
// verification of the raw token against every key, in set order, accepting
// the first that verifies. The audience must equal the configured client id.
// If no key verifies the token it returns ErrTokenNotVerified; that failure
// is an authentication rejection, not a transport problem.
func (p *OIDCProvider) VerifyIDToken(ctx context.Context, rawIDToken string) (*IdentityClaims, error) {
	keySet, err := p.fetchKeySet(ctx)
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(p.config.ClientID),
		jwt.WithExpirationRequired(),
	)

	for i := range keySet.Keys {
		key := keySet.Keys[i]

		claims := jwt.MapClaims{}

		token, parseErr := parser.ParseWithClaims(rawIDToken, claims, func(_ *jwt.Token) (interface{}, error) {
			return key.Key, nil
		})
		if parseErr != nil || !token.Valid {
			continue
		}

		return identityFromClaims(claims)
	}

	return nil, ErrTokenNotVerified
}

// fetchKeySet downloads the provider's JSON Web Key Set.
func (p *OIDCProvider) fetchKeySet(ctx context.Context) (*jose.JSONWebKeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build jwks request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwks response: %w", err)
	}

	var keySet jose.JSONWebKeySet
	if err = json.Unmarshal(body, &keySet); err != nil {
		return nil, fmt.Errorf("failed to parse jwks: %w", err)
	}

	return &keySet, nil
}

// identityFromClaims projects verified claims into IdentityClaims.
func identityFromClaims(claims jwt.MapClaims) (*IdentityClaims, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrNoSubjectClaim
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrNoExpiryClaim
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &IdentityClaims{
		Subject:   sub,
		Name:      name,
		Email:     email,
		ExpiresAt: exp.Time,
	}, nil
}
