package player

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/halverson/overtone/internal/core"
	"github.com/halverson/overtone/internal/spotify/auth"
	"github.com/halverson/overtone/internal/spotify/client"

	apperr "github.com/halverson/overtone/internal/errors"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Snapshot() auth.Credentials {
	return auth.Credentials{AccessToken: s.token}
}

type request struct {
	method string
	path   string
}

func newTestController(t *testing.T, token string, status int) (*Controller, chan Result, *int32, chan request) {
	t.Helper()

	var hits int32
	reqs := make(chan request, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		reqs <- request{method: r.Method, path: r.URL.Path}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	tokens := staticTokens{token: token}
	c := client.New(srv.Client(), tokens, nil)
	c.BaseURL = srv.URL

	results := make(chan Result, 8)
	ctrl := New(c, tokens, nil, func(r Result) { results <- r })
	return ctrl, results, &hits, reqs
}

func awaitResult(t *testing.T, results chan Result) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(time.Second):
		t.Fatal("no result received")
		return Result{}
	}
}

func TestExecuteWithoutToken(t *testing.T) {
	ctrl, results, hits, _ := newTestController(t, "", http.StatusNoContent)

	ctrl.Execute(core.Next())
	r := awaitResult(t, results)

	if r.Err == nil {
		t.Fatal("expected a not-authenticated result")
	}
	if r.Err.Kind != apperr.KindNotAuthenticated {
		t.Errorf("kind = %v, want not_authenticated", r.Err.Kind)
	}
	if r.Err.Detail != "Not Authenticated" {
		t.Errorf("detail = %q, want Not Authenticated", r.Err.Detail)
	}
	// The guard fires before any network activity.
	if n := atomic.LoadInt32(hits); n != 0 {
		t.Errorf("server hit %d times, want 0", n)
	}
}

func TestExecuteSkipCommands(t *testing.T) {
	tests := []struct {
		name     string
		intent   core.PlaybackIntent
		wantPath string
	}{
		{"previous", core.Previous(), "/me/player/previous"},
		{"next", core.Next(), "/me/player/next"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, results, _, reqs := newTestController(t, "token", http.StatusNoContent)

			ctrl.Execute(tt.intent)
			r := awaitResult(t, results)

			if r.Err != nil {
				t.Fatalf("unexpected error: %v", r.Err)
			}
			req := <-reqs
			if req.method != http.MethodPost {
				t.Errorf("method = %s, want POST", req.method)
			}
			if req.path != tt.wantPath {
				t.Errorf("path = %s, want %s", req.path, tt.wantPath)
			}
		})
	}
}

func TestExecuteToggle(t *testing.T) {
	tests := []struct {
		name        string
		playing     bool
		wantPath    string
		wantPlaying bool
	}{
		{"playing toggles to pause", true, "/me/player/pause", false},
		{"paused toggles to play", false, "/me/player/play", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, results, _, reqs := newTestController(t, "token", http.StatusOK)
			ctrl.SetPlaying(tt.playing)

			ctrl.Execute(core.Toggle(tt.playing))
			r := awaitResult(t, results)

			if r.Err != nil {
				t.Fatalf("unexpected error: %v", r.Err)
			}
			req := <-reqs
			if req.method != http.MethodPut {
				t.Errorf("method = %s, want PUT", req.method)
			}
			if req.path != tt.wantPath {
				t.Errorf("path = %s, want %s", req.path, tt.wantPath)
			}
			if r.Playing != tt.wantPlaying {
				t.Errorf("result playing = %v, want %v", r.Playing, tt.wantPlaying)
			}
			if ctrl.Playing() != tt.wantPlaying {
				t.Errorf("remembered playing = %v, want %v", ctrl.Playing(), tt.wantPlaying)
			}
		})
	}
}

func TestExecuteToggleFailureKeepsState(t *testing.T) {
	ctrl, results, _, _ := newTestController(t, "token", http.StatusBadGateway)
	ctrl.SetPlaying(true)

	ctrl.Execute(core.Toggle(true))
	r := awaitResult(t, results)

	if r.Err == nil {
		t.Fatal("expected error for 502")
	}
	// A failed toggle must not flip the remembered indicator.
	if !ctrl.Playing() {
		t.Error("remembered playing state flipped on failure")
	}
	if r.Playing != true {
		t.Errorf("result playing = %v, want unchanged true", r.Playing)
	}
}

func TestExecuteErrorTruncated(t *testing.T) {
	ctrl, results, _, _ := newTestController(t, "token", http.StatusServiceUnavailable)

	ctrl.Execute(core.Next())
	r := awaitResult(t, results)

	if r.Err == nil {
		t.Fatal("expected error for 503")
	}
	if len(r.Err.Detail) > apperr.DisplayLimit+len("...") {
		t.Errorf("detail not truncated: %q", r.Err.Detail)
	}
}

func TestExecuteSkipAcceptsOK(t *testing.T) {
	ctrl, results, _, _ := newTestController(t, "token", http.StatusOK)

	ctrl.Execute(core.Previous())
	r := awaitResult(t, results)

	if r.Err != nil {
		t.Errorf("200 should succeed: %v", r.Err)
	}
}

func TestResultCarriesIntent(t *testing.T) {
	ctrl, results, _, _ := newTestController(t, "token", http.StatusNoContent)

	ctrl.Execute(core.Toggle(false))
	r := awaitResult(t, results)

	if r.Intent.Kind != core.IntentToggle {
		t.Errorf("intent kind = %v, want toggle", r.Intent.Kind)
	}
	if !strings.Contains(r.Intent.Kind.String(), "toggle") {
		t.Errorf("intent kind string = %q", r.Intent.Kind.String())
	}
}
