package client

import (
	"context"
	"net/http"

	apperr "github.com/halverson/overtone/internal/errors"
)

// emptyJSONBody is sent with pause/play so the request carries a JSON content
// type, matching what the API expects on PUT.
var emptyJSONBody = []byte("{}")

// Previous skips to the previous track.
func (c *Client) Previous(ctx context.Context) *apperr.Error {
	return c.control(ctx, http.MethodPost, "/me/player/previous", nil)
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context) *apperr.Error {
	return c.control(ctx, http.MethodPost, "/me/player/next", nil)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context) *apperr.Error {
	return c.control(ctx, http.MethodPut, "/me/player/pause", emptyJSONBody)
}

// Play starts or resumes playback.
func (c *Client) Play(ctx context.Context) *apperr.Error {
	return c.control(ctx, http.MethodPut, "/me/player/play", emptyJSONBody)
}

func (c *Client) control(ctx context.Context, method, path string, body []byte) *apperr.Error {
	resp, aerr := c.Do(ctx, method, path, body)
	if aerr != nil {
		return aerr
	}
	if !Succeeded(resp.Status) {
		return apperr.Newf(apperr.KindAPI, "Error: %d", resp.Status)
	}
	return nil
}
