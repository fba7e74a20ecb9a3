package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	filterExpr  string
	preset      string
	startPage   int
	pageCount   int
	jsonOutput  bool
	withLibrary bool
	withRequest bool
	showDetails bool
)

var kindTitles = map[tmdb.ListKind]string{
	tmdb.Featured:   "Featured",
	tmdb.NowPlaying: "Now Playing",
	tmdb.Upcoming:   "Upcoming",
	tmdb.TopRated:   "Top Rated",
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [featured|now_playing|upcoming|top_rated|all]",
	Short: "List movies from a catalog list",
	Long: `List movies from one of the catalog lists, or from all of them.

Filter expressions select movies by their fields, for example:
  marquee list top_rated --pages 3 --filter 'Year >= 2020 and hasGenre("Horror")'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter")
	listCmd.Flags().IntVar(&startPage, "page", 1, "first page to load")
	listCmd.Flags().IntVar(&pageCount, "pages", 1, "number of pages to load")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a tree")
	listCmd.Flags().BoolVar(&withLibrary, "library", false, "mark movies already in Radarr")
	listCmd.Flags().BoolVar(&withRequest, "requests", false, "mark movies already requested in Overseerr")
	listCmd.Flags().BoolVar(&showDetails, "details", false, "show ids, votes and poster URLs")
}

// listOutput is one list in --json output
type listOutput struct {
	Kind   string              `json:"kind"`
	Page   int                 `json:"page"`
	Movies []tmdb.MovieSummary `json:"movies"`

	kind tmdb.ListKind
}

func runList(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(args)
	if err != nil {
		return err
	}
	if startPage < 1 || pageCount < 1 {
		return fmt.Errorf("--page and --pages must be at least 1")
	}

	expr, err := getFilterExpression()
	if err != nil {
		return err
	}
	f, err := filter.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	ctx := cmd.Context()

	favorites, err := loadFavorites()
	if err != nil {
		return err
	}
	marks := filter.Marks{Favorite: favorites.IsFavorite}
	options := catalog.FormatOptions{ShowDetails: showDetails, Favorites: favorites}

	if withLibrary {
		index, err := loadLibrary(ctx)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		marks.InLibrary = index.Contains
		options.InLibrary = index.Contains
	}

	if withRequest {
		requested, err := loadRequests(ctx)
		if err != nil {
			return fmt.Errorf("failed to load requests: %w", err)
		}
		isRequested := func(id int) bool {
			_, ok := requested[id]
			return ok
		}
		marks.Requested = isRequested
		options.Requested = isRequested
	}

	browser := catalog.NewBrowser(tmdbClient, logger)
	for _, kind := range kinds {
		if err := browser.StartAt(kind, startPage); err != nil {
			return err
		}
	}

	for range pageCount {
		var pending []tmdb.ListKind
		for _, kind := range kinds {
			if browser.HasMore(kind) {
				pending = append(pending, kind)
			}
		}
		if len(pending) == 0 {
			break
		}
		if err := browser.LoadAll(ctx, pending...); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	results := make([]listOutput, 0, len(kinds))
	for _, kind := range kinds {
		movies := f.Apply(browser.Movies(kind), marks)
		logger.Debug().Str("kind", kind.String()).Int("matched", len(movies)).Msg("Filtered movies")
		results = append(results, listOutput{
			Kind:   kind.String(),
			Page:   browser.Page(kind),
			Movies: movies,
			kind:   kind,
		})
	}

	if jsonOutput {
		return writeJSON(out, results)
	}

	formatter := catalog.NewConsoleFormatter()
	for _, r := range results {
		fmt.Fprintln(out, formatter.FormatMovieList(kindTitles[r.kind], r.Movies, options))
	}
	return nil
}

// parseKinds resolves the list argument; no argument means featured
func parseKinds(args []string) ([]tmdb.ListKind, error) {
	if len(args) == 0 {
		return []tmdb.ListKind{tmdb.Featured}, nil
	}
	if strings.EqualFold(args[0], "all") {
		return tmdb.ListKinds(), nil
	}
	kind, err := tmdb.ParseListKind(args[0])
	if err != nil {
		return nil, err
	}
	return []tmdb.ListKind{kind}, nil
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, nil
	}
	if preset != "" {
		return filter.Presets(cfg.Filter.Presets).Resolve(preset)
	}
	return "", nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
