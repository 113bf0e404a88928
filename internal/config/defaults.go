package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			RedirectURI: "http://127.0.0.1:8888/callback",
		},
		Overlay: OverlayConfig{
			PollInterval: 2000,
			Theme:        "dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Spotify.RedirectURI == "" {
		c.Spotify.RedirectURI = d.Spotify.RedirectURI
	}

	if c.Overlay.PollInterval == 0 {
		c.Overlay.PollInterval = d.Overlay.PollInterval
	}
	if c.Overlay.Theme == "" {
		c.Overlay.Theme = d.Overlay.Theme
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
