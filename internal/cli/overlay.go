package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/halverson/overtone/internal/browser"
	"github.com/halverson/overtone/internal/spotify/auth"
	"github.com/halverson/overtone/internal/spotify/client"
	"github.com/halverson/overtone/internal/spotify/player"
	"github.com/halverson/overtone/internal/spotify/poller"
	"github.com/halverson/overtone/internal/tui"
)

// runOverlay wires the components together and runs the overlay until quit:
// the poller on its own goroutine, each playback command on its own
// goroutine, the auth flow (when needed) off the UI goroutine, and a single
// events channel into the bubbletea model.
func runOverlay(cmd *cobra.Command, args []string) error {
	logger := newLogger(cfg)

	if !cfg.Spotify.HasCredentials() {
		logger.Warn("spotify client_id or client_secret is blank; authorization will fail",
			"config", configHint())
	}

	httpClient := client.NewHTTPClient()
	defer httpClient.CloseIdleConnections()

	storage, err := auth.NewStorage("")
	if err != nil {
		return err
	}

	authCfg := auth.NewConfig(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	if cfg.Spotify.RedirectURI != "" {
		authCfg.RedirectURI = cfg.Spotify.RedirectURI
	}

	session := auth.NewSession(authCfg, storage, httpClient, logger)
	apiClient := client.New(httpClient, session, logger)

	events := make(chan tea.Msg, 32)

	ctrl := player.New(apiClient, session, logger, func(r player.Result) {
		events <- tui.ControlMsg(r)
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if session.Restore() {
		events <- tui.AuthMsg{State: auth.StateAuthenticated}
	} else {
		// Failure to bind the callback port is fatal: without it the
		// redirect can never reach the process.
		cb, err := auth.NewCallbackServer(authCfg.CallbackPort())
		if err != nil {
			return fmt.Errorf("failed to start callback listener: %w", err)
		}
		cb.Start()
		defer func() { _ = cb.Shutdown(context.Background()) }()

		go func() {
			_ = session.Begin(ctx, browser.Open, cb)
			events <- tui.AuthMsg{State: session.State(), Reason: session.Reason()}
		}()
	}

	interval := time.Duration(cfg.Overlay.PollInterval) * time.Millisecond
	p := poller.New(apiClient, session, interval, logger)

	go p.Run(ctx)
	go func() {
		for u := range p.Updates() {
			events <- tui.UpdateMsg(u)
		}
	}()

	model := tui.NewModel(ctrl, events, cfg.Overlay.Theme)
	prog := tea.NewProgram(model)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("overlay failed: %w", err)
	}

	// No graceful drain: in-flight commands are abandoned on quit.
	p.Stop()
	return nil
}

func configHint() string {
	return "set spotify.client_id and spotify.client_secret in ~/.overtonerc or via OVERTONE_SPOTIFY_CLIENT_ID / OVERTONE_SPOTIFY_CLIENT_SECRET"
}
