package tmdb

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	language   string
	httpClient *http.Client
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithLanguage sets the language query parameter sent on every request.
func WithLanguage(language string) Option {
	return func(o *clientOptions) {
		if language != "" {
			o.language = language
		}
	}
}

// WithHTTPClient sets a custom HTTP client, overriding the timeout option.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}
