// Package auth implements the Spotify authorization-code flow: building the
// authorize URL, capturing the redirect code, exchanging it for tokens, and
// persisting the resulting credentials.
package auth

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// SpotifyAuthURL is the Spotify authorization endpoint.
	SpotifyAuthURL = "https://accounts.spotify.com/authorize"

	// SpotifyTokenURL is the Spotify token endpoint.
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultRedirectURI is the default callback URI for the local listener.
	// It must match the redirect URI registered in the Spotify dashboard.
	DefaultRedirectURI = "http://127.0.0.1:8888/callback"
)

// DefaultScopes are the Spotify scopes the overlay needs: reading the
// currently playing track and issuing playback commands.
var DefaultScopes = []string{
	"user-read-currently-playing",
	"user-modify-playback-state",
}

// Config holds the OAuth configuration for a confidential client.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// TokenURL is the token endpoint. Overridable in tests.
	TokenURL string
}

// NewConfig creates a new OAuth configuration with defaults.
func NewConfig(clientID, clientSecret string) *Config {
	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  DefaultRedirectURI,
		Scopes:       DefaultScopes,
		TokenURL:     SpotifyTokenURL,
	}
}

// BuildAuthURL constructs the Spotify authorization URL. Scopes are joined
// with spaces and percent-encoded as %20.
func (c *Config) BuildAuthURL() string {
	var b strings.Builder
	b.WriteString(SpotifyAuthURL)
	b.WriteString("?response_type=code")
	b.WriteString("&client_id=" + url.QueryEscape(c.ClientID))
	b.WriteString("&scope=" + url.PathEscape(strings.Join(c.Scopes, " ")))
	b.WriteString("&redirect_uri=" + url.QueryEscape(c.RedirectURI))
	return b.String()
}

// CallbackPort extracts the port the local listener should bind from the
// redirect URI. Falls back to 8888 when the URI carries no explicit port.
func (c *Config) CallbackPort() int {
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return 8888
	}
	if p := u.Port(); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			return port
		}
	}
	return 8888
}
