package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/halverson/overtone/internal/core"
	"github.com/halverson/overtone/internal/spotify/auth"
	"github.com/halverson/overtone/internal/spotify/client"
	"github.com/halverson/overtone/internal/spotify/player"
)

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Skip to the previous track",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runControl(cmd.Context(), core.Previous())
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next track",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runControl(cmd.Context(), core.Next())
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle play/pause",
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(toggleCmd)
}

// controlDeps wires the one-shot command variant of the overlay's stack: a
// restored session and a controller whose single result lands on a channel.
func controlDeps() (*client.Client, *player.Controller, chan player.Result, func(), error) {
	logger := newLogger(cfg)
	httpClient := client.NewHTTPClient()

	storage, err := auth.NewStorage("")
	if err != nil {
		httpClient.CloseIdleConnections()
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize credential storage: %w", err)
	}

	authCfg := auth.NewConfig(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	session := auth.NewSession(authCfg, storage, httpClient, logger)
	if !session.Restore() {
		httpClient.CloseIdleConnections()
		return nil, nil, nil, nil, fmt.Errorf("not authorized: run 'overtone auth login' first")
	}

	apiClient := client.New(httpClient, session, logger)

	results := make(chan player.Result, 1)
	ctrl := player.New(apiClient, session, logger, func(r player.Result) {
		results <- r
	})

	cleanup := func() { httpClient.CloseIdleConnections() }
	return apiClient, ctrl, results, cleanup, nil
}

func runControl(ctx context.Context, intent core.PlaybackIntent) error {
	_, ctrl, results, cleanup, err := controlDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl.Execute(intent)
	return awaitResult(ctx, results)
}

// runToggle seeds the toggle direction from the live playback state, since a
// one-shot invocation has no overlay remembering it.
func runToggle(cmd *cobra.Command, args []string) error {
	apiClient, ctrl, results, cleanup, err := controlDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	playing := false
	if track, aerr := apiClient.CurrentlyPlaying(ctx); aerr == nil {
		playing = track.IsPlaying
	}

	ctrl.SetPlaying(playing)
	ctrl.Execute(core.Toggle(playing))
	return awaitResult(ctx, results)
}

func awaitResult(ctx context.Context, results <-chan player.Result) error {
	select {
	case r := <-results:
		if r.Err != nil {
			return fmt.Errorf("%s", r.Err.Detail)
		}
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"command": r.Intent.Kind.String(),
				"playing": r.Playing,
			})
		}
		switch r.Intent.Kind {
		case core.IntentPrevious:
			fmt.Println("Skipped to previous track.")
		case core.IntentNext:
			fmt.Println("Skipped to next track.")
		case core.IntentToggle:
			if r.Playing {
				fmt.Println("Playing.")
			} else {
				fmt.Println("Paused.")
			}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
