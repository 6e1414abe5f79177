package audit

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAllowedExtensions overrides the upload extension allow-list.
func WithAllowedExtensions(exts []string) Option {
	return func(c *Client) {
		if len(exts) > 0 {
			c.allowedExts = make(map[string]bool, len(exts))
			for _, ext := range exts {
				c.allowedExts[ext] = true
			}
		}
	}
}

// WithMaxFileSize caps the size of a single uploaded file in bytes.
// Zero disables the check.
func WithMaxFileSize(bytes int64) Option {
	return func(c *Client) {
		c.maxFileSize = bytes
	}
}
