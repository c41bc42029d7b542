// Package requestid issues time-ordered unique request identifiers.
//
// Identifiers are UUIDv7 values: the leading bits carry the creation time in
// milliseconds, so ids sort by creation order and the creation timestamp can
// be recovered from the id itself. The request context relies on this to keep
// a single source of truth for when a request was first observed.
package requestid

import (
	"time"

	"github.com/google/uuid"
)

// New returns a fresh UUIDv7 request id.
func New() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err //nolint:wrapcheck
	}

	return id, nil
}

// Timestamp decodes the creation time embedded in a UUIDv7 id.
func Timestamp(id uuid.UUID) time.Time {
	sec, nsec := id.Time().UnixTime()

	return time.Unix(sec, nsec).UTC()
}
