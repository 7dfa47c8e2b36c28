// Package tokenstore persists TDA access tokens between runs so a
// still-valid token can be reused instead of burning a refresh on
// every invocation.
package tokenstore

import (
	"context"
	"errors"

	"github.com/tda-tools/tdactl/tda"
)

// ErrNotFound is returned by Load when no token has been stored yet.
var ErrNotFound = errors.New("tokenstore: no token stored")

// Store loads and saves access tokens. Implementations persist the
// token's JSON shape (expires_at, scope, token) as-is.
type Store interface {
	Load(ctx context.Context) (*tda.AccessToken, error)
	Save(ctx context.Context, token *tda.AccessToken) error
}
