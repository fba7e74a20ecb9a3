package library

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// DefaultTimeout is used when NewClient is given no timeout
const DefaultTimeout = 30 * time.Second

// Client reads the movie library of a Radarr instance
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger
}

// NewClient connects to Radarr and verifies the connection
func NewClient(url, apiKey string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	api := radarr.New(starr.New(apiKey, url, timeout))
	if err := api.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(api, logger), nil
}

// NewClientWithAPI creates a client on top of an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}

// Ping checks that Radarr is reachable
func (c *Client) Ping() error {
	return c.api.Ping()
}

// Entry is a library movie as seen from the catalog
type Entry struct {
	Title     string
	Year      int
	HasFile   bool
	Monitored bool
}

// Index maps TMDB ids to library entries
type Index struct {
	entries map[int]Entry
}

// Contains checks if the movie with the given TMDB id is in the library
func (i *Index) Contains(tmdbID int) bool {
	if i == nil {
		return false
	}
	_, ok := i.entries[tmdbID]
	return ok
}

// Get returns the library entry of a TMDB id
func (i *Index) Get(tmdbID int) (Entry, bool) {
	if i == nil {
		return Entry{}, false
	}
	e, ok := i.entries[tmdbID]
	return e, ok
}

// Len returns the number of indexed movies
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Index retrieves every movie from Radarr and indexes it by TMDB id. Movies
// without a TMDB id are skipped.
func (c *Client) Index(ctx context.Context) (*Index, error) {
	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	idx := &Index{entries: make(map[int]Entry, len(movies))}
	for _, movie := range movies {
		if movie == nil || movie.TmdbID <= 0 {
			continue
		}
		idx.entries[int(movie.TmdbID)] = Entry{
			Title:     movie.Title,
			Year:      movie.Year,
			HasFile:   movie.HasFile,
			Monitored: movie.Monitored,
		}
	}

	c.logger.Debug().Msgf("Indexed %d of %d movies from Radarr", idx.Len(), len(movies))
	return idx, nil
}
