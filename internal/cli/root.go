package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halverson/overtone/internal/config"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "overtone",
	Short: "Spotify now-playing overlay for your terminal",
	Long: `Overtone shows the currently playing Spotify track in a small overlay
panel and controls playback (previous, play/pause, next).

Run without arguments to launch the overlay. On first run it walks you
through Spotify authorization; credentials are kept for 24 hours, after
which the flow reruns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE:         runOverlay,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.overtonerc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		if config.FindConfigFile() == "" {
			if path, werr := config.WriteTemplate(); werr == nil {
				fmt.Fprintf(os.Stderr, "Created config template at %s\n", path)
			}
		}
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
