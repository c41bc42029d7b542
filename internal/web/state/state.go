// Package state implements the server-side CSRF-state store for pending
// login attempts. The browser only ever holds an opaque correlation id (the
// state-key cookie); the expected state token and nonce stay server-side,
// keyed by that id, and are consumed on first read.
package state

import (
	"encoding/json"
	"time"

	"github.com/gofiber/storage"
	"github.com/rs/zerolog/log"
)

// Entry is a pending login attempt.
type Entry struct {
	// State is the token the callback's state query parameter must equal.
	State string `json:"state"`
	// Nonce is the per-login nonce included in the authorization request.
	Nonce string `json:"nonce"`
}

// Store wraps a key-value storage backend with the configured state TTL.
type Store struct {
	storage storage.Storage
	ttl     time.Duration
}

// NewStore creates a CSRF-state store on top of the given storage backend.
func NewStore(st storage.Storage, ttl time.Duration) *Store {
	if st == nil {
		panic("state: storage is nil")
	}

	return &Store{storage: st, ttl: ttl}
}

// TTL returns the configured pending-login lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Put records a pending login attempt under the given state-key id.
func (s *Store) Put(stateKey string, e Entry) error {
	out, err := json.Marshal(e)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return s.storage.Set(stateKey, out, s.ttl) //nolint:wrapcheck
}

// Take retrieves and deletes the entry for the given state-key id. The
// delete happens regardless of whether the caller's validation succeeds, so
// a state token can never be replayed. A missing or expired entry reports
// ok=false, indistinguishable from a never-issued id.
func (s *Store) Take(stateKey string) (Entry, bool) {
	if stateKey == "" {
		return Entry{}, false
	}

	raw, err := s.storage.Get(stateKey)

	// delete first, inspect later: single use even on decode failures
	if delErr := s.storage.Delete(stateKey); delErr != nil {
		log.Warn().Err(delErr).Msg("failed to delete csrf state entry")
	}

	if err != nil {
		log.Warn().Err(err).Msg("csrf state lookup failed")
		return Entry{}, false
	}

	if len(raw) == 0 {
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Warn().Err(err).Msg("csrf state payload is not valid json")
		return Entry{}, false
	}

	return e, true
}
