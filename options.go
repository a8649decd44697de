package cubeplay

import (
	"net/http"
	"time"
)

// ClientOption configures a SolverClient.
type ClientOption func(*SolverClient)

// WithHTTPClient replaces the underlying HTTP client. Useful for tests and
// for callers that need custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *SolverClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout for solver requests.
// Solving hard scrambles can take a while; the default is 60 seconds.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *SolverClient) {
		c.httpClient.Timeout = d
	}
}
