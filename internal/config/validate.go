package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Spotify.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("spotify: %w", err))
	}
	if err := c.Overlay.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("overlay: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks SpotifyConfig for errors. Missing credentials are allowed;
// only a malformed redirect URI is rejected.
func (c *SpotifyConfig) Validate() error {
	if c.RedirectURI != "" {
		if _, err := url.Parse(c.RedirectURI); err != nil {
			return fmt.Errorf("invalid redirect_uri: %w", err)
		}
	}
	return nil
}

// Validate checks OverlayConfig for errors.
func (c *OverlayConfig) Validate() error {
	if c.PollInterval < 0 {
		return errors.New("poll_interval must be non-negative")
	}
	switch c.Theme {
	case "", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be dark or light)", c.Theme)
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
