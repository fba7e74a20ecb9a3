package tmdb

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Wire shapes use pointers (and nil slices) so absent or null fields can be told
// apart from zero values. Unknown fields are ignored. Keys must match the wire
// names exactly; see decodeExact.

type movieSummaryJSON struct {
	ID               *int     `json:"id"`
	Title            *string  `json:"title"`
	OriginalTitle    *string  `json:"original_title"`
	Overview         *string  `json:"overview"`
	ReleaseDate      *string  `json:"release_date"`
	VoteAverage      *float64 `json:"vote_average"`
	VoteCount        *int     `json:"vote_count"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
	Adult            *bool    `json:"adult"`
	GenreIDs         []int    `json:"genre_ids"`
	Popularity       *float64 `json:"popularity"`
	Video            *bool    `json:"video"`
	OriginalLanguage *string  `json:"original_language"`
}

type pagedResultJSON struct {
	Page         *int              `json:"page"`
	Results      []json.RawMessage `json:"results"`
	TotalPages   *int              `json:"total_pages"`
	TotalResults *int              `json:"total_results"`
}

type genreJSON struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type movieDetailJSON struct {
	Title        *string           `json:"title"`
	Overview     *string           `json:"overview"`
	ReleaseDate  *string           `json:"release_date"`
	Runtime      *int              `json:"runtime"`
	VoteAverage  *float64          `json:"vote_average"`
	Genres       []json.RawMessage `json:"genres"`
	PosterPath   *string           `json:"poster_path"`
	BackdropPath *string           `json:"backdrop_path"`
	Tagline      *string           `json:"tagline"`
	Status       *string           `json:"status"`
}

// statusJSON is the error envelope TMDB sends with non-2xx responses.
type statusJSON struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

var (
	pagedResultKeys  = wireKeys(pagedResultJSON{})
	movieSummaryKeys = wireKeys(movieSummaryJSON{})
	movieDetailKeys  = wireKeys(movieDetailJSON{})
	genreKeys        = wireKeys(genreJSON{})
)

// wireKeys lists the json tag names of a wire shape
func wireKeys(v any) []string {
	t := reflect.TypeOf(v)
	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		keys = append(keys, name)
	}
	return keys
}

// decodeExact unmarshals a JSON object into v using only the keys that match
// keys byte for byte. encoding/json alone also accepts case variants such as
// VOTE_AVERAGE for vote_average.
func decodeExact(data []byte, v any, keys []string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	exact := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if value, ok := obj[key]; ok {
			exact[key] = value
		}
	}

	filtered, err := json.Marshal(exact)
	if err != nil {
		return err
	}
	return json.Unmarshal(filtered, v)
}

type field struct {
	name    string
	present bool
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return fmt.Errorf("missing required field %q", f.name)
		}
	}
	return nil
}

// decodePagedResult decodes a list response. Any missing required field or type
// mismatch fails the whole page.
func decodePagedResult(body []byte) (*PagedResult, error) {
	var raw pagedResultJSON
	if err := decodeExact(body, &raw, pagedResultKeys); err != nil {
		return nil, err
	}
	if err := requireFields(
		field{"page", raw.Page != nil},
		field{"results", raw.Results != nil},
		field{"total_pages", raw.TotalPages != nil},
		field{"total_results", raw.TotalResults != nil},
	); err != nil {
		return nil, err
	}

	results := make([]MovieSummary, 0, len(raw.Results))
	for i, data := range raw.Results {
		var m movieSummaryJSON
		if err := decodeExact(data, &m, movieSummaryKeys); err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		movie, err := m.toMovieSummary()
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		results = append(results, movie)
	}

	return &PagedResult{
		Page:         *raw.Page,
		Results:      results,
		TotalPages:   *raw.TotalPages,
		TotalResults: *raw.TotalResults,
	}, nil
}

func (m movieSummaryJSON) toMovieSummary() (MovieSummary, error) {
	if err := requireFields(
		field{"id", m.ID != nil},
		field{"title", m.Title != nil},
		field{"original_title", m.OriginalTitle != nil},
		field{"overview", m.Overview != nil},
		field{"release_date", m.ReleaseDate != nil},
		field{"vote_average", m.VoteAverage != nil},
		field{"vote_count", m.VoteCount != nil},
		field{"adult", m.Adult != nil},
		field{"genre_ids", m.GenreIDs != nil},
		field{"popularity", m.Popularity != nil},
		field{"video", m.Video != nil},
		field{"original_language", m.OriginalLanguage != nil},
	); err != nil {
		return MovieSummary{}, err
	}

	return MovieSummary{
		ID:               *m.ID,
		Title:            *m.Title,
		OriginalTitle:    *m.OriginalTitle,
		Overview:         *m.Overview,
		ReleaseDate:      *m.ReleaseDate,
		VoteAverage:      *m.VoteAverage,
		VoteCount:        *m.VoteCount,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		Adult:            *m.Adult,
		GenreIDs:         m.GenreIDs,
		Popularity:       *m.Popularity,
		Video:            *m.Video,
		OriginalLanguage: *m.OriginalLanguage,
	}, nil
}

// decodeMovieDetail decodes a detail response with the same all-or-nothing rule.
func decodeMovieDetail(body []byte) (*MovieDetail, error) {
	var raw movieDetailJSON
	if err := decodeExact(body, &raw, movieDetailKeys); err != nil {
		return nil, err
	}
	if err := requireFields(
		field{"title", raw.Title != nil},
		field{"overview", raw.Overview != nil},
		field{"release_date", raw.ReleaseDate != nil},
		field{"runtime", raw.Runtime != nil},
		field{"vote_average", raw.VoteAverage != nil},
		field{"genres", raw.Genres != nil},
		field{"tagline", raw.Tagline != nil},
		field{"status", raw.Status != nil},
	); err != nil {
		return nil, err
	}

	genres := make([]Genre, 0, len(raw.Genres))
	for i, data := range raw.Genres {
		var g genreJSON
		if err := decodeExact(data, &g, genreKeys); err != nil {
			return nil, fmt.Errorf("genres[%d]: %w", i, err)
		}
		if err := requireFields(field{"id", g.ID != nil}, field{"name", g.Name != nil}); err != nil {
			return nil, fmt.Errorf("genres[%d]: %w", i, err)
		}
		genres = append(genres, Genre{ID: *g.ID, Name: *g.Name})
	}

	return &MovieDetail{
		Title:        *raw.Title,
		Overview:     *raw.Overview,
		ReleaseDate:  *raw.ReleaseDate,
		Runtime:      *raw.Runtime,
		VoteAverage:  *raw.VoteAverage,
		Genres:       genres,
		PosterPath:   raw.PosterPath,
		BackdropPath: raw.BackdropPath,
		Tagline:      *raw.Tagline,
		Status:       *raw.Status,
	}, nil
}

// statusMessage extracts status_message from an error body, if any.
func statusMessage(body []byte) string {
	var s statusJSON
	if json.Unmarshal(body, &s) != nil {
		return ""
	}
	return s.StatusMessage
}
