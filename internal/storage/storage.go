// Package storage persists the small amount of client state the marketplace
// web shell keeps between requests: the bearer token and the signed-in user.
package storage

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

// Store is a string key/value store with local-storage semantics: Get on a
// missing key reports ok=false, and Remove on a missing key is not an error.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key.
	Remove(ctx context.Context, key string) error
}

// ClearCredentials removes the token and user record.
func ClearCredentials(ctx context.Context, s Store) error {
	return errors.Join(
		s.Remove(ctx, TokenKey),
		s.Remove(ctx, UserKey),
	)
}
