package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/halverson/overtone/internal/browser"
	"github.com/halverson/overtone/internal/spotify/auth"
	"github.com/halverson/overtone/internal/spotify/client"
)

var manualCode bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Spotify authorization",
	Long:  `Commands for managing Spotify OAuth authorization.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize with Spotify",
	Long: `Opens a browser for the Spotify authorization-code flow and stores the
resulting credentials. With --manual the local callback listener is skipped
and you paste the code (echoed by the redirect page) into a prompt instead.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Long:  `Removes the stored Spotify credentials from the local machine.`,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authorization status",
	Long:  `Shows whether usable Spotify credentials are stored.`,
	RunE:  runAuthStatus,
}

func init() {
	authLoginCmd.Flags().BoolVar(&manualCode, "manual", false, "paste the authorization code instead of using the callback listener")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

// codePrompt collects the authorization code interactively. It satisfies
// auth.CodeSource for the --manual path.
type codePrompt struct{}

func (codePrompt) WaitCode(ctx context.Context) (string, error) {
	var code string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Spotify authorization").
			Description("After approving access, paste the code shown in the browser:").
			Value(&code),
	)).WithTheme(huh.ThemeCatppuccin())

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	if !cfg.Spotify.HasCredentials() {
		return fmt.Errorf("spotify not configured: %s", configHint())
	}

	logger := newLogger(cfg)
	httpClient := client.NewHTTPClient()
	defer httpClient.CloseIdleConnections()

	storage, err := auth.NewStorage("")
	if err != nil {
		return fmt.Errorf("failed to initialize credential storage: %w", err)
	}

	authCfg := auth.NewConfig(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	if cfg.Spotify.RedirectURI != "" {
		authCfg.RedirectURI = cfg.Spotify.RedirectURI
	}

	session := auth.NewSession(authCfg, storage, httpClient, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	var codes auth.CodeSource
	if manualCode {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("--manual requires an interactive terminal")
		}
		codes = codePrompt{}
	} else {
		cb, err := auth.NewCallbackServer(authCfg.CallbackPort())
		if err != nil {
			return fmt.Errorf("failed to start callback listener: %w", err)
		}
		cb.Start()
		defer func() { _ = cb.Shutdown(context.Background()) }()
		codes = cb
	}

	fmt.Println("Opening browser for Spotify authorization...")
	open := func(url string) error {
		if err := browser.Open(url); err != nil {
			fmt.Printf("Could not open browser automatically.\nPlease open this URL:\n\n%s\n\n", url)
		}
		return nil
	}

	if !manualCode {
		fmt.Println("Waiting for the redirect...")
	}
	if err := session.Begin(ctx, open, codes); err != nil {
		return fmt.Errorf("authorization failed: %s", session.Reason())
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "authenticated"})
	}
	fmt.Println("Authorization successful. Credentials stored.")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	storage, err := auth.NewStorage("")
	if err != nil {
		return fmt.Errorf("failed to initialize credential storage: %w", err)
	}

	if !storage.Exists() {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "not_authenticated"})
		}
		fmt.Println("Not authorized with Spotify.")
		return nil
	}

	if err := storage.Delete(); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "logged_out"})
	}
	fmt.Println("Logged out of Spotify.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	storage, err := auth.NewStorage("")
	if err != nil {
		return fmt.Errorf("failed to initialize credential storage: %w", err)
	}

	_, err = storage.Load()
	switch {
	case err == nil:
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"authenticated": true,
				"path":          storage.Path(),
			})
		}
		fmt.Println("Authorized with Spotify.")
		fmt.Printf("Credentials: %s\n", storage.Path())

	case errors.Is(err, auth.ErrNotFound) && storage.Exists():
		// A record exists but has aged past the 24h limit.
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"authenticated": false,
				"stale":         true,
			})
		}
		fmt.Println("Stored credentials are older than 24 hours.")
		fmt.Println("Run 'overtone auth login' to re-authorize.")

	case errors.Is(err, auth.ErrNotFound):
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"authenticated": false,
			})
		}
		fmt.Println("Not authorized with Spotify.")
		fmt.Println("Run 'overtone auth login' to authorize.")

	default:
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	return nil
}
