package tda

import (
	"strings"
	"time"
)

// AccessToken is a bearer credential usable by the client. It is the
// parsed form of a TokenResponse and is what callers should persist
// between runs; the JSON tags define the persisted shape.
//
// Tokens are never mutated in place. Refreshing produces a new value
// that replaces the old one wholesale via Client.SetAccessToken.
type AccessToken struct {
	// ExpiresAt is the absolute expiry time in milliseconds since epoch.
	ExpiresAt int64    `json:"expires_at"`
	Scope     []string `json:"scope"`
	Token     string   `json:"token"`
}

// NewAccessToken converts a raw token-exchange response into an
// AccessToken. Expiry is computed as the current wall-clock time plus
// the server-declared lifetime. The scope string is split on single
// spaces; an empty scope string yields a single empty entry.
func NewAccessToken(resp TokenResponse) AccessToken {
	now := time.Now().UnixMilli()

	return AccessToken{
		Token:     resp.AccessToken,
		ExpiresAt: now + resp.ExpiresIn*1000,
		Scope:     strings.Split(resp.Scope, " "),
	}
}

// Expired reports whether the token's expiry time has been reached.
// A freshly issued token with a positive lifetime is not expired.
func (t AccessToken) Expired() bool {
	return time.Now().UnixMilli() >= t.ExpiresAt
}
