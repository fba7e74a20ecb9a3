package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
)

// favoriteCmd groups the favorites subcommands
var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Manage favorite movies",
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <movie-id>...",
	Short: "Mark movies as favorite",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateFavorites(cmd, args, true)
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove <movie-id>...",
	Aliases: []string{"rm"},
	Short:   "Unmark favorite movies",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateFavorites(cmd, args, false)
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite movies",
	Args:  cobra.NoArgs,
	RunE:  runFavoriteList,
}

func init() {
	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
}

func updateFavorites(cmd *cobra.Command, args []string, favorite bool) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseMovieID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	favorites, err := loadFavorites()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if favorite {
		// Only known movies can be added; every id is checked before anything changes.
		results := catalog.FetchDetails(cmd.Context(), tmdbClient, ids, logger)
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("failed to get movie %d: %w", r.MovieID, r.Err)
			}
		}
		for _, r := range results {
			favorites.Set(r.MovieID, true)
			fmt.Fprintf(out, "★ Added %s (%d)\n", r.Detail.Title, r.MovieID)
		}
	} else {
		for _, id := range ids {
			favorites.Set(id, false)
			fmt.Fprintf(out, "Removed %d\n", id)
		}
	}

	if err := favorites.Save(cfg.Favorites.Path); err != nil {
		return err
	}
	logger.Debug().Str("path", cfg.Favorites.Path).Int("count", favorites.Len()).Msg("Saved favorites")
	return nil
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	favorites, err := loadFavorites()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ids := favorites.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return nil
	}

	results := catalog.FetchDetails(cmd.Context(), tmdbClient, ids, logger)

	fmt.Fprintf(out, "\nFavorites (%d):\n\n", len(results))
	for i, r := range results {
		prefix := "├"
		if i == len(results)-1 {
			prefix = "╰"
		}

		if r.Err != nil {
			fmt.Fprintf(out, "%s── %d [UNAVAILABLE: %v]\n", prefix, r.MovieID, r.Err)
			continue
		}

		fmt.Fprintf(out, "%s── %s", prefix, r.Detail.Title)
		if year := r.Detail.Year(); year > 0 {
			fmt.Fprintf(out, " (%d)", year)
		}
		fmt.Fprintf(out, " ★ %.1f | ID: %d\n", r.Detail.VoteAverage, r.MovieID)
	}
	return nil
}
