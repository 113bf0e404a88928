package auth

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildAuthURL(t *testing.T) {
	cfg := NewConfig("my-client", "my-secret")
	got := cfg.BuildAuthURL()

	if !strings.HasPrefix(got, SpotifyAuthURL+"?") {
		t.Fatalf("URL does not start with authorize endpoint: %s", got)
	}
	if !strings.Contains(got, "response_type=code") {
		t.Error("missing response_type=code")
	}
	if !strings.Contains(got, "client_id=my-client") {
		t.Error("missing client_id")
	}
	if !strings.Contains(got, "scope=user-read-currently-playing%20user-modify-playback-state") {
		t.Errorf("scopes not space-joined with %%20 encoding: %s", got)
	}
	if !strings.Contains(got, "redirect_uri="+url.QueryEscape(DefaultRedirectURI)) {
		t.Error("redirect_uri not query-escaped")
	}
	if strings.Contains(got, "my-secret") {
		t.Error("client secret must never appear in the authorize URL")
	}

	// The URL must round-trip through a real parser.
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("scope") != "user-read-currently-playing user-modify-playback-state" {
		t.Errorf("parsed scope = %q", q.Get("scope"))
	}
	if q.Get("redirect_uri") != DefaultRedirectURI {
		t.Errorf("parsed redirect_uri = %q", q.Get("redirect_uri"))
	}
}

func TestCallbackPort(t *testing.T) {
	tests := []struct {
		uri  string
		want int
	}{
		{"http://127.0.0.1:8888/callback", 8888},
		{"http://127.0.0.1:9090/callback", 9090},
		{"http://localhost/callback", 8888},
		{"not a uri at all\x7f", 8888},
	}

	for _, tt := range tests {
		cfg := NewConfig("id", "secret")
		cfg.RedirectURI = tt.uri
		if got := cfg.CallbackPort(); got != tt.want {
			t.Errorf("CallbackPort(%q) = %d, want %d", tt.uri, got, tt.want)
		}
	}
}
