package feed

import (
	"net/http"

	"go.uber.org/zap"
)

// ClientBuilderOption is a functional option for configuring a Client via NewClient.
type ClientBuilderOption func(*client)

// WithURL sets the feed endpoint.
//
// Parameters:
//   - url: the endpoint to GET
//
// Returns:
//   - ClientBuilderOption: a function that applies the url option to a client
func WithURL(url string) ClientBuilderOption {
	return func(c *client) {
		c.url = url
	}
}

// WithHTTPClient sets the HTTP client used for requests.
//
// Parameters:
//   - hc: the HTTP client
//
// Returns:
//   - ClientBuilderOption: a function that applies the http client option to a client
func WithHTTPClient(hc *http.Client) ClientBuilderOption {
	return func(c *client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used by the client.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - ClientBuilderOption: a function that applies the logger option to a client
func WithLogger(logger *zap.Logger) ClientBuilderOption {
	return func(c *client) {
		if logger != nil {
			c.logger = logger.Named("feed")
		}
	}
}
