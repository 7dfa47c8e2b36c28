package tda

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	accessToken *AccessToken
}

// WithBaseURL points the client at a different API base URL. Mostly
// useful for tests and API sandboxes.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client, overriding WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithAccessToken installs an existing access token at construction
// time, e.g. one loaded from storage.
func WithAccessToken(token *AccessToken) Option {
	return func(o *clientOptions) {
		o.accessToken = token
	}
}
