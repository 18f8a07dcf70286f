// Package idx generates the identifiers used for user uids and request ids.
// Identifiers are ULIDs, so they sort by creation time.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a malformed identifier.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh identifier for the current UTC time. Identifiers minted
// within the same millisecond are strictly increasing.
func New() string {
	return NewAt(time.Now().UTC())
}

// NewAt returns an identifier stamped with t.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Parse validates s and returns it in canonical form.
func Parse(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalid
	}

	id, err := ulid.ParseStrict(s)
	if err != nil {
		return "", ErrInvalid
	}
	return id.String(), nil
}

// Time extracts the creation time embedded in id, or the zero time if id is
// not a valid identifier.
func Time(id string) time.Time {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
