package forge

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option is used for configuring the batch client.
type Option func(c *Client)

// WithHTTPClient sets custom http client. By default a client with
// Config.Timeout is used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithDelay overrides Config.Delay, the pause after each sent request.
func WithDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithLogger sets the logger. Default is a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithProgress registers a callback invoked after each item.
func WithProgress(fn func(ItemResult)) Option {
	return func(c *Client) { c.progress = fn }
}

// WithRequestID overrides the X-Request-Id generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}
