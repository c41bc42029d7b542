// Package session implements server-side sessions referenced by an opaque
// cookie value. Session data lives in a key-value storage backend with
// per-key TTL; a request only ever holds a transient copy of the looked-up
// fields.
package session

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LocalsKey is the fiber.Ctx Locals key under which a resolved session is stored.
const LocalsKey = "session"

// User is the identity snapshot carried by a session.
type User struct {
	ID    uint64   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Data is the stored session payload.
type Data struct {
	User User `json:"user"`
}

// Session is a resolved session: its id plus the stored payload.
type Session struct {
	ID   string
	Data Data
}

// Store wraps a key-value storage backend with the configured session TTL.
type Store struct {
	storage storage.Storage
	ttl     time.Duration
}

// NewStore creates a session store on top of the given storage backend.
func NewStore(st storage.Storage, ttl time.Duration) *Store {
	if st == nil {
		panic("session: storage is nil")
	}

	return &Store{storage: st, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Write persists the session data under the given id with the store TTL.
func (s *Store) Write(sessionID string, d Data) error {
	out, err := json.Marshal(d)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return s.storage.Set(sessionID, out, s.ttl) //nolint:wrapcheck
}

// Find looks up a session by id. Absence is a normal outcome and is reported
// through the bool; storage failures are logged and treated as a miss so a
// flaky backend degrades to "unauthenticated" instead of failing requests.
func (s *Store) Find(sessionID string) (*Session, bool) {
	if sessionID == "" {
		return nil, false
	}

	raw, err := s.storage.Get(sessionID)
	if err != nil {
		log.Warn().Err(err).Msg("session lookup failed")
		return nil, false
	}

	if len(raw) == 0 {
		return nil, false
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Warn().Err(err).Msg("session payload is not valid json")
		return nil, false
	}

	return &Session{ID: sessionID, Data: d}, true
}

// Delete removes the session entry. Deleting a missing key is not an error.
func (s *Store) Delete(sessionID string) error {
	return s.storage.Delete(sessionID) //nolint:wrapcheck
}

// GenerateID generates a new session id: time-ordered and unguessable
// (UUIDv7, random bits from crypto/rand).
func GenerateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return id.String(), nil
}

// FromCtx returns the session attached by the setup middleware, if any.
func FromCtx(c *fiber.Ctx) (*Session, bool) {
	sess, ok := c.Locals(LocalsKey).(*Session)
	return sess, ok
}
