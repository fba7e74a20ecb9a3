package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/overseerr"
)

// requestCmd represents the request command
var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request movies through Overseerr",
	Long:  `Send movie requests to Overseerr and list the movies that were already requested.`,
}

var requestAddCmd = &cobra.Command{
	Use:   "add <movie-id>...",
	Short: "Request one or more movies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRequestAdd,
}

var requestListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List requested movies",
	Args:    cobra.NoArgs,
	RunE:    runRequestList,
}

func init() {
	requestCmd.AddCommand(requestAddCmd)
	requestCmd.AddCommand(requestListCmd)
}

// newRequestClient connects to Overseerr. It fails when Overseerr is not enabled.
func newRequestClient() (*overseerr.Client, error) {
	if !cfg.Overseerr.Enabled {
		return nil, fmt.Errorf("overseerr is not enabled in the configuration")
	}
	return overseerr.NewClient(cfg.Overseerr.URL, cfg.Overseerr.APIKey, logger,
		overseerr.WithTimeout(cfg.TMDB.Timeout),
	)
}

func runRequestAdd(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseMovieID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	client, err := newRequestClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	var failed int
	for _, id := range ids {
		detail, err := tmdbClient.FetchMovieDetail(ctx, id)
		if err != nil {
			return fmt.Errorf("movie %d: %w", id, err)
		}

		req, err := client.RequestMovie(ctx, id)
		switch {
		case errors.Is(err, overseerr.ErrAlreadyRequested):
			fmt.Fprintf(out, "- %s (%d) was already requested\n", detail.Title, id)
		case err != nil:
			failed++
			logger.Error().Err(err).Int("movie_id", id).Msg("Failed to request movie")
		default:
			fmt.Fprintf(out, "✓ Requested %s (%d) [%s]\n", detail.Title, id, req.Status)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(ids))
	}
	return nil
}

func runRequestList(cmd *cobra.Command, args []string) error {
	client, err := newRequestClient()
	if err != nil {
		return err
	}

	requests, err := client.MovieRequests(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(requests) == 0 {
		fmt.Fprintln(out, "No movie requests.")
		return nil
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	fmt.Fprintf(out, "Requests (%d):\n", len(requests))
	for i, req := range requests {
		prefix := "├──"
		if i == len(requests)-1 {
			prefix = "╰──"
		}
		fmt.Fprintf(out, "%s %d | %s | %s | by %s\n",
			prefix, req.Media.TmdbID, req.Status, req.Media.Status, req.RequestedBy.GetDisplayName())
	}
	return nil
}
