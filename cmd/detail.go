package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
)

var detailJSON bool

// detailCmd represents the detail command
var detailCmd = &cobra.Command{
	Use:   "detail <movie-id>",
	Short: "Show the details of a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

func init() {
	detailCmd.Flags().BoolVar(&detailJSON, "json", false, "print JSON instead of a tree")
	detailCmd.Flags().BoolVar(&withLibrary, "library", false, "mark the movie if it is already in Radarr")
}

func runDetail(cmd *cobra.Command, args []string) error {
	movieID, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	detail, err := tmdbClient.FetchMovieDetail(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to get movie %d: %w", movieID, err)
	}

	if detailJSON {
		return writeJSON(cmd.OutOrStdout(), detail)
	}

	favorites, err := loadFavorites()
	if err != nil {
		return err
	}
	options := catalog.FormatOptions{Favorites: favorites}

	if withLibrary {
		index, err := loadLibrary(ctx)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		options.InLibrary = index.Contains
	}

	fmt.Fprint(cmd.OutOrStdout(), catalog.NewConsoleFormatter().FormatMovieDetail(movieID, detail, options))
	return nil
}

func parseMovieID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", s)
	}
	return id, nil
}
