package tmdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"2024-07-24", 2024},
		{"1999", 1999},
		{"", 0},
		{"99", 0},
		{"TBA-01-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.expected, MovieSummary{ReleaseDate: tt.date}.Year())
			assert.Equal(t, tt.expected, MovieDetail{ReleaseDate: tt.date}.Year())
		})
	}
}

func TestImageURLs(t *testing.T) {
	movie := MovieSummary{PosterPath: strPtr("/abc123.jpg")}
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc123.jpg", movie.PosterURL(PosterSize))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc123.jpg", movie.PosterURL("original"))
	assert.Empty(t, movie.BackdropURL(BackdropSize))

	movie.BackdropPath = strPtr("")
	assert.Empty(t, movie.BackdropURL(BackdropSize))
}

func TestMovieSummaryHasGenre(t *testing.T) {
	movie := MovieSummary{GenreIDs: []int{28, 35}}
	assert.True(t, movie.HasGenre(35))
	assert.False(t, movie.HasGenre(18))
}

func TestMovieDetailGenreNames(t *testing.T) {
	detail := MovieDetail{Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}}
	assert.Equal(t, []string{"Action", "Comedy"}, detail.GenreNames())
	assert.Empty(t, MovieDetail{}.GenreNames())
}

func TestParseListKind(t *testing.T) {
	tests := []struct {
		input    string
		expected ListKind
		wantErr  bool
	}{
		{"now_playing", NowPlaying, false},
		{"now-playing", NowPlaying, false},
		{"Upcoming", Upcoming, false},
		{"top-rated", TopRated, false},
		{"featured", Featured, false},
		{"discover", Featured, false},
		{"popular", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseListKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestListKinds(t *testing.T) {
	for _, kind := range ListKinds() {
		assert.True(t, kind.Valid(), kind.String())
		parsed, err := ParseListKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	assert.False(t, ListKind(0).Valid())
	assert.Equal(t, "unknown", ListKind(99).String())
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{InvalidURL, "invalidURL"},
		{URLError, "urlError"},
		{DataError, "dataError"},
		{DecodingError, "decodingError"},
		{DataNotAvailable, "dataNotAvailable"},
		{ErrorKind(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestError(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		err := &Error{Kind: DataError, Op: "movie 1", StatusCode: 404, Message: "not found"}
		assert.Equal(t, "movie 1: dataError: status 404: not found", err.Error())

		err = &Error{Kind: DecodingError, Err: errors.New("missing required field \"title\"")}
		assert.Equal(t, "decodingError: missing required field \"title\"", err.Error())
	})

	t.Run("kind matching", func(t *testing.T) {
		err := fmt.Errorf("load page: %w", &Error{Kind: DecodingError, Op: "movies top_rated page 1"})
		assert.ErrorIs(t, err, ErrDecoding)
		assert.NotErrorIs(t, err, ErrData)
		assert.Equal(t, DecodingError, KindOf(err))
		assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &Error{Kind: DataError, Err: cause}
		assert.ErrorIs(t, err, cause)
	})
}
