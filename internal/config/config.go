package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.overtonerc, $XDG_CONFIG_HOME/overtone/config.toml,
// ~/.config/overtone/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or "" when none
// exists yet.
func FindConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".overtonerc"),
		filepath.Join(xdgConfigHome(home), "overtone", "config.toml"),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// WriteTemplate creates a commented config template at the default path and
// returns it. Used on first run so the user knows where to put credentials.
func WriteTemplate() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}

	dir := filepath.Join(xdgConfigHome(home), "overtone")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	template := `# overtone configuration
#
# Create a Spotify application at https://developer.spotify.com/dashboard and
# register the redirect URI below, then fill in the credentials.

[spotify]
client_id = ""
client_secret = ""
redirect_uri = "http://127.0.0.1:8888/callback"

[overlay]
# Refresh cadence for the now-playing display, in milliseconds.
poll_interval = 2000
theme = "dark"

[log]
level = "info"
# file = "~/.local/state/overtone/overtone.log"
`
	if err := os.WriteFile(path, []byte(template), 0600); err != nil {
		return "", fmt.Errorf("failed to write config template: %w", err)
	}

	return path, nil
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OVERTONE_SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("OVERTONE_SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}
	if v := os.Getenv("OVERTONE_SPOTIFY_REDIRECT_URI"); v != "" {
		cfg.Spotify.RedirectURI = v
	}

	if v := os.Getenv("OVERTONE_OVERLAY_POLL_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Overlay.PollInterval = i
		}
	}
	if v := os.Getenv("OVERTONE_OVERLAY_THEME"); v != "" {
		cfg.Overlay.Theme = v
	}

	if v := os.Getenv("OVERTONE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OVERTONE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
