package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/halverson/overtone/internal/core"

	apperr "github.com/halverson/overtone/internal/errors"
)

// nowPlayingResponse mirrors the slice of the currently-playing payload the
// overlay uses. Pointer fields distinguish absent from zero so required
// fields can be enforced.
type nowPlayingResponse struct {
	IsPlaying *bool `json:"is_playing"`
	Item      *struct {
		Name    *string `json:"name"`
		Artists []struct {
			Name *string `json:"name"`
		} `json:"artists"`
		Album struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
	} `json:"item"`
}

// ParseNowPlaying extracts a TrackState from a currently-playing body.
// is_playing, item.name and the first artist name are required; artwork is
// the first album image, or empty when the list is empty. Only the first
// artist is used.
func ParseNowPlaying(body []byte) (core.TrackState, error) {
	var np nowPlayingResponse
	if err := json.Unmarshal(body, &np); err != nil {
		return core.TrackState{}, fmt.Errorf("malformed body: %w", err)
	}

	if np.IsPlaying == nil {
		return core.TrackState{}, fmt.Errorf("missing is_playing")
	}
	if np.Item == nil || np.Item.Name == nil {
		return core.TrackState{}, fmt.Errorf("missing item")
	}
	if len(np.Item.Artists) == 0 || np.Item.Artists[0].Name == nil {
		return core.TrackState{}, fmt.Errorf("missing artists")
	}

	artwork := ""
	if len(np.Item.Album.Images) > 0 {
		artwork = np.Item.Album.Images[0].URL
	}

	return core.TrackState{
		Title:      *np.Item.Name,
		Artist:     *np.Item.Artists[0].Name,
		ArtworkURL: artwork,
		IsPlaying:  *np.IsPlaying,
	}, nil
}

// CurrentlyPlaying fetches the now-playing state and classifies the response
// by the fixed status table. Parse failures are converted to a parse-kind
// error, never propagated as a fault.
func (c *Client) CurrentlyPlaying(ctx context.Context) (core.TrackState, *apperr.Error) {
	resp, aerr := c.Do(ctx, http.MethodGet, "/me/player/currently-playing", nil)
	if aerr != nil {
		return core.TrackState{}, aerr
	}

	switch resp.Status {
	case http.StatusOK:
		state, err := ParseNowPlaying(resp.Body)
		if err != nil {
			c.logger.Debug("could not parse now-playing body", "err", err)
			return core.TrackState{}, apperr.New(apperr.KindParse, "Could not parse track info")
		}
		return state, nil
	case http.StatusNoContent:
		return core.NotPlaying(), nil
	case http.StatusUnauthorized:
		return core.TrackState{}, apperr.New(apperr.KindAuth, "Invalid or expired token")
	case http.StatusForbidden:
		return core.TrackState{}, apperr.New(apperr.KindAuth, "Insufficient permissions")
	case http.StatusTooManyRequests:
		return core.TrackState{}, apperr.New(apperr.KindRateLimited, "Rate limit exceeded")
	default:
		return core.TrackState{}, apperr.Newf(apperr.KindAPI, "Status: %d, %s", resp.Status, resp.Body)
	}
}
