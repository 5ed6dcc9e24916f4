// Package credstore persists the auth token and the cached user profile,
// the two durable keys the dashboard keeps across restarts. It is the
// single source of truth for "is there a credential".
package credstore

import (
	"context"
	"encoding/json"

	"github.com/eleveia/eleve-go/restclient"
)

// Store adapters must never panic when the backing storage is unavailable:
// reads degrade to "no token", writes report the error.
type Store interface {
	Token() (string, bool)
	SetToken(token string) error
	// User is the cached profile as raw JSON; the session layer owns the shape.
	User() (json.RawMessage, bool)
	SetUser(user json.RawMessage) error
	// Clear removes the token and the cached user; called on logout.
	Clear() error
	// IsAuthenticated is a pure local read: token present, no network call.
	IsAuthenticated() bool
}

// Tokens adapts a Store to the rest client's token source. Store reads are
// local (or carry their own timeout), so the request context is not
// consulted.
func Tokens(s Store) restclient.TokenSource {
	return restclient.TokenSourceFunc(func(context.Context) (string, bool) {
		return s.Token()
	})
}
