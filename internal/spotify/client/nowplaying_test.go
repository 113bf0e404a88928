package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/halverson/overtone/internal/core"

	apperr "github.com/halverson/overtone/internal/errors"
)

const fullBody = `{
	"is_playing": true,
	"item": {
		"name": "Song Title",
		"artists": [{"name": "First Artist"}, {"name": "Second Artist"}],
		"album": {
			"images": [
				{"url": "https://img.example/large.jpg"},
				{"url": "https://img.example/small.jpg"}
			]
		}
	}
}`

func TestParseNowPlaying(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    core.TrackState
		wantErr bool
	}{
		{
			name: "full payload",
			body: fullBody,
			want: core.TrackState{
				Title:      "Song Title",
				Artist:     "First Artist",
				ArtworkURL: "https://img.example/large.jpg",
				IsPlaying:  true,
			},
		},
		{
			name: "paused without artwork",
			body: `{"is_playing": false, "item": {"name": "T", "artists": [{"name": "A"}], "album": {"images": []}}}`,
			want: core.TrackState{Title: "T", Artist: "A", IsPlaying: false},
		},
		{
			name: "album absent entirely",
			body: `{"is_playing": true, "item": {"name": "T", "artists": [{"name": "A"}]}}`,
			want: core.TrackState{Title: "T", Artist: "A", IsPlaying: true},
		},
		{
			name:    "missing is_playing",
			body:    `{"item": {"name": "T", "artists": [{"name": "A"}]}}`,
			wantErr: true,
		},
		{
			name:    "missing item",
			body:    `{"is_playing": true}`,
			wantErr: true,
		},
		{
			name:    "missing item name",
			body:    `{"is_playing": true, "item": {"artists": [{"name": "A"}]}}`,
			wantErr: true,
		},
		{
			name:    "empty artists",
			body:    `{"is_playing": true, "item": {"name": "T", "artists": []}}`,
			wantErr: true,
		},
		{
			name:    "artist without name",
			body:    `{"is_playing": true, "item": {"name": "T", "artists": [{}]}}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNowPlaying([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNowPlaying failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseNowPlaying = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCurrentlyPlaying(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me/player/currently-playing" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write([]byte(fullBody))
	})

	track, aerr := c.CurrentlyPlaying(context.Background())
	if aerr != nil {
		t.Fatalf("CurrentlyPlaying failed: %v", aerr)
	}
	if track.Title != "Song Title" || track.Artist != "First Artist" {
		t.Errorf("track = %+v", track)
	}
}

func TestCurrentlyPlayingStatusTable(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   apperr.Kind
		wantDetail string
	}{
		{"unauthorized", 401, "", apperr.KindAuth, "Invalid or expired token"},
		{"forbidden", 403, "", apperr.KindAuth, "Insufficient permissions"},
		{"rate limited", 429, "", apperr.KindRateLimited, "Rate limit exceeded"},
		{"server error", 500, "boom", apperr.KindAPI, "Status: 500, boom"},
		{"bad gateway", 502, "", apperr.KindAPI, "Status: 502, "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, aerr := c.CurrentlyPlaying(context.Background())
			if aerr == nil {
				t.Fatal("expected error, got nil")
			}
			if aerr.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", aerr.Kind, tt.wantKind)
			}
			if aerr.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", aerr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestCurrentlyPlayingNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	track, aerr := c.CurrentlyPlaying(context.Background())
	if aerr != nil {
		t.Fatalf("CurrentlyPlaying failed: %v", aerr)
	}
	if track != core.NotPlaying() {
		t.Errorf("track = %+v, want NotPlaying placeholder", track)
	}
	if track.Title != "Not Playing" {
		t.Errorf("Title = %q, want Not Playing", track.Title)
	}
}

func TestCurrentlyPlayingParseFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_playing": true}`))
	})

	_, aerr := c.CurrentlyPlaying(context.Background())
	if aerr == nil {
		t.Fatal("expected error, got nil")
	}
	if aerr.Kind != apperr.KindParse {
		t.Errorf("kind = %v, want parse", aerr.Kind)
	}
	if aerr.Detail != "Could not parse track info" {
		t.Errorf("detail = %q", aerr.Detail)
	}
}
