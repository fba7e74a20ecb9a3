package catalog

import (
	"fmt"
	"strings"

	"github.com/s0up4200/marquee/tmdb"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	// Favorites marks favorite movies with a star when set.
	Favorites *Favorites
	// InLibrary marks movies already present in the media library when set.
	InLibrary func(tmdbID int) bool
	// Requested marks movies with a pending or approved request when set.
	Requested func(tmdbID int) bool
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats a list of movies for console display
func (f *ConsoleFormatter) FormatMovieList(title string, movies []tmdb.MovieSummary, options FormatOptions) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder

	sb.WriteString("\n" + title)
	fmt.Fprintf(&sb, " (%d):\n\n", len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s", prefix, movie.Title)
		if year := movie.Year(); year > 0 {
			fmt.Fprintf(&sb, " (%d)", year)
		}
		fmt.Fprintf(&sb, " ★ %.1f", movie.VoteAverage)
		sb.WriteString(markers(movie.ID, options))
		sb.WriteString("\n")

		if options.ShowDetails {
			fmt.Fprintf(&sb, "%sID: %d | Votes: %d | Popularity: %.1f\n", indent, movie.ID, movie.VoteCount, movie.Popularity)
			if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
				fmt.Fprintf(&sb, "%sOriginal title: %s (%s)\n", indent, movie.OriginalTitle, movie.OriginalLanguage)
			}
			if poster := movie.PosterURL(tmdb.PosterSize); poster != "" {
				fmt.Fprintf(&sb, "%sPoster: %s\n", indent, poster)
			}
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMovieDetail formats a single movie detail
func (f *ConsoleFormatter) FormatMovieDetail(movieID int, detail *tmdb.MovieDetail, options FormatOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s%s\n", detail.Title, markers(movieID, options))

	if detail.Tagline != "" {
		fmt.Fprintf(&sb, "│   %q\n", detail.Tagline)
	}

	var parts []string
	if year := detail.Year(); year > 0 {
		parts = append(parts, fmt.Sprintf("%d", year))
	}
	if detail.Runtime > 0 {
		parts = append(parts, fmt.Sprintf("%d Minutes", detail.Runtime))
	}
	parts = append(parts, fmt.Sprintf("★ %.1f", detail.VoteAverage))
	if detail.Status != "" {
		parts = append(parts, detail.Status)
	}
	fmt.Fprintf(&sb, "├── %s\n", strings.Join(parts, " | "))

	if names := detail.GenreNames(); len(names) > 0 {
		fmt.Fprintf(&sb, "├── Genres: %s\n", strings.Join(names, ", "))
	}
	if poster := detail.PosterURL(tmdb.PosterSize); poster != "" {
		fmt.Fprintf(&sb, "├── Poster: %s\n", poster)
	}
	if backdrop := detail.BackdropURL(tmdb.BackdropSize); backdrop != "" {
		fmt.Fprintf(&sb, "├── Backdrop: %s\n", backdrop)
	}
	fmt.Fprintf(&sb, "╰── %s\n", detail.Overview)

	return sb.String()
}

// markers renders the caller-owned flags of a movie
func markers(movieID int, options FormatOptions) string {
	var sb strings.Builder
	if options.Favorites != nil && options.Favorites.IsFavorite(movieID) {
		sb.WriteString(" [FAVORITE]")
	}
	if options.InLibrary != nil && options.InLibrary(movieID) {
		sb.WriteString(" [IN LIBRARY]")
	}
	if options.Requested != nil && options.Requested(movieID) {
		sb.WriteString(" [REQUESTED]")
	}
	return sb.String()
}
