package config

// Config is the root configuration structure.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Overlay OverlayConfig `toml:"overlay"`
	Log     LogConfig     `toml:"log"`
}

// SpotifyConfig holds the Spotify application credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// HasCredentials reports whether both client credentials are set. Blank
// credentials are not a config error: the overlay still starts, and
// authorization fails later with a typed error.
func (c *SpotifyConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// OverlayConfig holds overlay display settings.
type OverlayConfig struct {
	PollInterval int    `toml:"poll_interval"` // milliseconds
	Theme        string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
