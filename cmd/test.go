package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/library"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to TMDB",
	Long:  `Check the configured access token against TMDB and, if enabled, the connections to Radarr and Overseerr.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintf(out, "Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)
	if err := tmdbClient.Ping(ctx); err != nil {
		return fmt.Errorf("TMDB connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	if err := testRadarr(cmd); err != nil {
		return err
	}
	return testOverseerr(cmd)
}

func testRadarr(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if !cfg.Radarr.Enabled {
		fmt.Fprintln(out, "\nRadarr integration: Disabled")
		return nil
	}

	fmt.Fprintf(out, "\nTesting connection to Radarr at %s...\n", cfg.Radarr.URL)
	client, err := library.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, cfg.TMDB.Timeout, logger)
	if err != nil {
		return err
	}
	index, err := client.Index(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Radarr connection successful!")
	fmt.Fprintf(out, "- Movies with a TMDB id: %d\n", index.Len())

	return nil
}

func testOverseerr(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if !cfg.Overseerr.Enabled {
		fmt.Fprintln(out, "\nOverseerr integration: Disabled")
		return nil
	}

	fmt.Fprintf(out, "\nTesting connection to Overseerr at %s...\n", cfg.Overseerr.URL)
	client, err := newRequestClient()
	if err != nil {
		return err
	}
	requests, err := client.MovieRequests(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Overseerr connection successful!")
	fmt.Fprintf(out, "- Movie requests: %d\n", len(requests))

	return nil
}
