// Package session carries the authenticated user id in a signed cookie.
//
// The server keeps no session table: a Codec turns a Payload into an opaque token and
// back, and a Gate reads and writes that token through the TM_session cookie.
// Logout only clears the cookie, so a token captured earlier stays valid until its TTL ends.
package session

import (
	"errors"
	"time"
)

// DefaultTTL is the lifetime of an issued session.
const DefaultTTL = 30 * 24 * time.Hour

// ErrEmptySecret is returned when a codec is built without a signing secret.
var ErrEmptySecret = errors.New("session secret must be set")

// Payload is the data stored in a session.
type Payload struct {
	UserID string `json:"userId"`
}

// Empty reports whether the payload identifies nobody.
func (p Payload) Empty() bool { return p.UserID == "" }

// Codec signs payloads into tokens and verifies them.
//
// Parse never fails: a missing, malformed, tampered or expired token yields the empty
// Payload, so callers treat "no session" and "bad session" the same way.
type Codec interface {
	Issue(p Payload) (string, error)
	Parse(token string) Payload
}
