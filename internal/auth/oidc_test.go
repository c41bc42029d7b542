package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/authgate-io/authgate/internal/auth"
)

// fakeProvider is an httptest-backed OIDC issuer serving a discovery
// document, a JWKS endpoint and a token endpoint.
type fakeProvider struct {
	server    *httptest.Server
	keys      []*rsa.PrivateKey
	idToken     string
	tokenHits   atomic.Int64
	noJWKSURI   bool
	omitIDToken bool
}

func newFakeProvider(t *testing.T, keyCount int) *fakeProvider {
	t.Helper()

	fp := &fakeProvider{}

	for i := 0; i < keyCount; i++ {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("rsa.GenerateKey() error = %v", err)
		}

		fp.keys = append(fp.keys, key)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		doc := map[string]any{
			"issuer":                 fp.server.URL,
			"authorization_endpoint": fp.server.URL + "/auth",
			"token_endpoint":         fp.server.URL + "/token",
		}
		if !fp.noJWKSURI {
			doc["jwks_uri"] = fp.server.URL + "/keys"
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})

	mux.HandleFunc("/keys", func(w http.ResponseWriter, _ *http.Request) {
		set := jose.JSONWebKeySet{}
		for i, key := range fp.keys {
			set.Keys = append(set.Keys, jose.JSONWebKey{
				Key:       key.Public(),
				KeyID:     "key-" + string(rune('a'+i)),
				Algorithm: "RS256",
				Use:       "sig",
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	})

	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		fp.tokenHits.Add(1)

		body := map[string]any{
			"access_token": "at-test",
			"token_type":   "Bearer",
		}
		if !fp.omitIDToken {
			body["id_token"] = fp.idToken
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})

	fp.server = httptest.NewServer(mux)
	t.Cleanup(fp.server.Close)

	return fp
}

// signToken issues an RS256 ID token signed with the given private key.
func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	return raw
}

func baseClaims(fp *fakeProvider, clientID string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   fp.server.URL,
		"aud":   clientID,
		"sub":   "user-123",
		"name":  "Alice Example",
		"email": "alice@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func newProvider(t *testing.T, fp *fakeProvider, clientID string) *auth.OIDCProvider {
	t.Helper()

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, fp.server.Client())

	provider, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{
		ProviderURL:  fp.server.URL,
		ClientID:     clientID,
		ClientSecret: "secret",
		RedirectURL:  "https://rp.example.com/openid-connect/callback",
	})
	if err != nil {
		t.Fatalf("NewOIDCProvider() error = %v", err)
	}

	return provider
}

func TestNewOIDCProviderRequiresJWKSURL(t *testing.T) {
	fp := newFakeProvider(t, 1)
	fp.noJWKSURI = true

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, fp.server.Client())

	_, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{
		ProviderURL: fp.server.URL,
		ClientID:    "client",
	})
	if !errors.Is(err, auth.ErrNoJWKSURL) {
		t.Errorf("expected ErrNoJWKSURL, got %v", err)
	}
}

func TestAuthCodeURLCarriesStateAndNonce(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	u := provider.AuthCodeURL("state-tok", "nonce-tok")

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}

	q := parsed.Query()

	if q.Get("state") != "state-tok" {
		t.Errorf("state = %q, want state-tok", q.Get("state"))
	}

	if q.Get("nonce") != "nonce-tok" {
		t.Errorf("nonce = %q, want nonce-tok", q.Get("nonce"))
	}

	if q.Get("client_id") != "client-1" {
		t.Errorf("client_id = %q, want client-1", q.Get("client_id"))
	}

	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q, want code", q.Get("response_type"))
	}
}

func TestExchangeReturnsIDToken(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	fp.idToken = signToken(t, fp.keys[0], baseClaims(fp, "client-1"))

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, fp.server.Client())

	raw, err := provider.Exchange(ctx, "code-abc")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	if raw != fp.idToken {
		t.Error("Exchange() did not return the issued id token")
	}

	if fp.tokenHits.Load() != 1 {
		t.Errorf("token endpoint hit %d times, want 1", fp.tokenHits.Load())
	}
}

func TestExchangeMissingIDToken(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	fp.omitIDToken = true

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, fp.server.Client())

	if _, err := provider.Exchange(ctx, "code-abc"); !errors.Is(err, auth.ErrNoIDToken) {
		t.Errorf("expected ErrNoIDToken, got %v", err)
	}
}

func TestVerifyIDTokenAcceptsAnyKeyInSet(t *testing.T) {
	fp := newFakeProvider(t, 3)
	provider := newProvider(t, fp, "client-1")

	// a token signed by any member of the published set must verify,
	// not just the first key
	for i, key := range fp.keys {
		raw := signToken(t, key, baseClaims(fp, "client-1"))

		claims, err := provider.VerifyIDToken(context.Background(), raw)
		if err != nil {
			t.Fatalf("key %d: VerifyIDToken() error = %v", i, err)
		}

		if claims.Subject != "user-123" {
			t.Errorf("key %d: Subject = %q, want user-123", i, claims.Subject)
		}

		if claims.Name != "Alice Example" || claims.Email != "alice@example.com" {
			t.Errorf("key %d: unexpected identity %+v", i, claims)
		}

		if claims.ExpiresAt.IsZero() {
			t.Errorf("key %d: ExpiresAt not set", i)
		}
	}
}

func TestVerifyIDTokenRejectsForeignKey(t *testing.T) {
	fp := newFakeProvider(t, 2)
	provider := newProvider(t, fp, "client-1")

	foreign, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey() error = %v", err)
	}

	raw := signToken(t, foreign, baseClaims(fp, "client-1"))

	if _, err := provider.VerifyIDToken(context.Background(), raw); !errors.Is(err, auth.ErrTokenNotVerified) {
		t.Errorf("expected ErrTokenNotVerified, got %v", err)
	}
}

func TestVerifyIDTokenRejectsWrongAudience(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	claims := baseClaims(fp, "someone-else")
	raw := signToken(t, fp.keys[0], claims)

	if _, err := provider.VerifyIDToken(context.Background(), raw); !errors.Is(err, auth.ErrTokenNotVerified) {
		t.Errorf("expected ErrTokenNotVerified, got %v", err)
	}
}

func TestVerifyIDTokenRejectsExpired(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	claims := baseClaims(fp, "client-1")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	raw := signToken(t, fp.keys[0], claims)

	if _, err := provider.VerifyIDToken(context.Background(), raw); !errors.Is(err, auth.ErrTokenNotVerified) {
		t.Errorf("expected ErrTokenNotVerified, got %v", err)
	}
}

func TestVerifyIDTokenRequiresExpiry(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	claims := baseClaims(fp, "client-1")
	delete(claims, "exp")

	raw := signToken(t, fp.keys[0], claims)

	if _, err := provider.VerifyIDToken(context.Background(), raw); !errors.Is(err, auth.ErrTokenNotVerified) {
		t.Errorf("expected ErrTokenNotVerified, got %v", err)
	}
}

func TestVerifyIDTokenRejectsTampered(t *testing.T) {
	fp := newFakeProvider(t, 1)
	provider := newProvider(t, fp, "client-1")

	raw := signToken(t, fp.keys[0], baseClaims(fp, "client-1"))

	tampered := raw[:len(raw)-4] + "AAAA"

	if _, err := provider.VerifyIDToken(context.Background(), tampered); !errors.Is(err, auth.ErrTokenNotVerified) {
		t.Errorf("expected ErrTokenNotVerified, got %v", err)
	}
}
