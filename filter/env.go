package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/s0up4200/marquee/tmdb"
)

const dateLayout = "2006-01-02"

// genreIDs maps the TMDB movie genre names to their ids
var genreIDs = map[string]int{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"sci-fi":          878,
	"tv movie":        10770,
	"thriller":        53,
	"war":             10752,
	"western":         37,
}

// GenreID returns the TMDB id of a genre name, ignoring case
func GenreID(name string) (int, bool) {
	id, ok := genreIDs[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// staticHelpers are the functions that do not depend on the movie being evaluated
func staticHelpers() map[string]any {
	return map[string]any{
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysUntil": func(t time.Time) int {
			return int(time.Until(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return time.Now().AddDate(0, -months, 0)
		},
		"yearsAgo": func(years int) time.Time {
			return time.Now().AddDate(-years, 0, 0)
		},
		"parseDate": func(s string) time.Time {
			t, _ := time.Parse(dateLayout, s)
			return t
		},
		"now": time.Now,

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// compileEnv is the type prototype expressions are checked against
func compileEnv() map[string]any {
	return newEnv(tmdb.MovieSummary{}, Marks{})
}

// newEnv builds the evaluation environment for one movie
func newEnv(movie tmdb.MovieSummary, marks Marks) map[string]any {
	env := staticHelpers()

	released, _ := time.Parse(dateLayout, movie.ReleaseDate)
	genres := movie.GenreIDs
	if genres == nil {
		genres = []int{}
	}

	maps.Copy(env, map[string]any{
		"ID":            movie.ID,
		"Title":         movie.Title,
		"OriginalTitle": movie.OriginalTitle,
		"Overview":      movie.Overview,
		"Language":      movie.OriginalLanguage,
		"ReleaseDate":   movie.ReleaseDate,
		"Released":      released,
		"Year":          movie.Year(),
		"VoteAverage":   movie.VoteAverage,
		"VoteCount":     movie.VoteCount,
		"Popularity":    movie.Popularity,
		"Adult":         movie.Adult,
		"Video":         movie.Video,
		"GenreIDs":      genres,
		"HasPoster":     movie.PosterURL(tmdb.PosterSize) != "",
		"Favorite":      marks.Favorite != nil && marks.Favorite(movie.ID),
		"InLibrary":     marks.InLibrary != nil && marks.InLibrary(movie.ID),
		"Requested":     marks.Requested != nil && marks.Requested(movie.ID),

		// hasGenre accepts a genre id or a genre name
		"hasGenre": func(genre any) bool {
			switch g := genre.(type) {
			case int:
				return movie.HasGenre(g)
			case float64:
				return movie.HasGenre(int(g))
			case string:
				id, ok := GenreID(g)
				return ok && movie.HasGenre(id)
			}
			return false
		},
	})

	return env
}
