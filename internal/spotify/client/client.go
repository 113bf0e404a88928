// Package client is the shared low-level Spotify Web API concern: it builds
// authenticated requests, applies timeouts, and maps HTTP statuses to the
// overlay's error taxonomy.
package client

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/overtone/internal/spotify/auth"

	apperr "github.com/halverson/overtone/internal/errors"
)

const (
	// DefaultBaseURL is the Spotify Web API base URL.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// requestTimeout applies to both connecting and reading the response.
	requestTimeout = 10 * time.Second
)

// TokenSource supplies a fresh credentials snapshot per request.
type TokenSource interface {
	Snapshot() auth.Credentials
}

// Client is a Spotify Web API client. Safe for concurrent use; the underlying
// transport is shared by every component and closed once at shutdown.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger

	// BaseURL is the API root. Overridable in tests.
	BaseURL string
}

// NewHTTPClient returns the process-wide HTTP client: 10 second connect and
// response timeouts, concurrency-safe connection pool.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: requestTimeout}).DialContext,
		},
	}
}

// New creates a new Spotify client on the shared transport.
func New(httpClient *http.Client, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
		BaseURL:    DefaultBaseURL,
	}
}

// Response is the raw outcome of an authenticated request.
type Response struct {
	Status int
	Body   []byte
}

// Do issues an authenticated request. A bearer token from the current
// credentials snapshot is attached; bodies get a JSON content type.
// Network-level failures (DNS, refused connections, timeouts) come back as a
// single network-kind error; HTTP statuses are returned for the caller to
// classify. There is no automatic retry.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*Response, *apperr.Error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, apperr.New(apperr.KindNetwork, err.Error())
	}

	req.Header.Set("Authorization", "Bearer "+c.tokens.Snapshot().AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("spotify request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("spotify request failed", "method", method, "path", path, "err", err)
		return nil, apperr.New(apperr.KindNetwork, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.New(apperr.KindNetwork, err.Error())
	}

	c.logger.Debug("spotify response", "method", method, "path", path, "status", resp.StatusCode)

	return &Response{Status: resp.StatusCode, Body: respBody}, nil
}

// Succeeded reports whether a control command status is a success. 200 and
// 204 are independent successful outcomes; this is set membership, not a
// bitwise combination of the two codes.
func Succeeded(status int) bool {
	return status == http.StatusOK || status == http.StatusNoContent
}
