package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the currently playing track",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	apiClient, _, _, cleanup, err := controlDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	track, aerr := apiClient.CurrentlyPlaying(ctx)
	if aerr != nil {
		return fmt.Errorf("%s", aerr.Detail)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(track)
	}

	if track.Artist == "" {
		fmt.Println(track.Title)
		return nil
	}

	state := "paused"
	if track.IsPlaying {
		state = "playing"
	}
	fmt.Printf("%s - %s (%s)\n", track.Title, track.Artist, state)
	if Verbose() && track.ArtworkURL != "" {
		fmt.Printf("  artwork: %s\n", track.ArtworkURL)
	}
	return nil
}
