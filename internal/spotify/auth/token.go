package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Credentials are the persisted Spotify OAuth tokens. Both fields are
// present-or-empty; the record is always rewritten wholesale.
//
// The refresh token is stored but never sent to the token endpoint: a record
// older than the storage MaxAge is discarded and the full authorization flow
// reruns instead.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no usable access token is held.
func (c Credentials) Empty() bool {
	return c.AccessToken == ""
}

// tokenResponse is the raw response from Spotify's token endpoint.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Error        string `json:"error"`
	ErrorDesc    string `json:"error_description"`
}

// ExchangeCode exchanges an authorization code for credentials via a
// form-encoded POST. Fields absent from a successful response normalize to
// empty strings; a missing field never fails the whole exchange.
func ExchangeCode(ctx context.Context, httpClient *http.Client, cfg *Config, code string) (Credentials, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", cfg.RedirectURI)
	data.Set("client_id", cfg.ClientID)
	data.Set("client_secret", cfg.ClientSecret)

	endpoint := cfg.TokenURL
	if endpoint == "" {
		endpoint = SpotifyTokenURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read response: %w", err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if tr.Error != "" {
		return Credentials{}, fmt.Errorf("token error: %s - %s", tr.Error, tr.ErrorDesc)
	}

	if resp.StatusCode != http.StatusOK {
		return Credentials{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Credentials{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}, nil
}
