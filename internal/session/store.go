// Package session keeps the per-browser authentication state server-side.
//
// A browser holds only an opaque session id cookie. The token and the user
// profile live together in one Store record, so a reader can never observe
// one without the other.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/urlio/urlio-web/internal/model"
)

// ErrNotFound is returned when no live record exists for an id.
var ErrNotFound = errors.New("session not found")

// Store persists session records.
type Store interface {
	// Get returns the record for id or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Session, error)
	// Set replaces the whole record for id.
	Set(ctx context.Context, id string, s *model.Session, ttl time.Duration) error
	// Delete removes the record for id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}
