// Package tmdbtest provides an in-memory tmdb.Catalog for tests.
package tmdbtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/s0up4200/marquee/tmdb"
)

type pageKey struct {
	kind tmdb.ListKind
	page int
}

type pageResponse struct {
	result *tmdb.PagedResult
	err    error
}

type detailResponse struct {
	detail *tmdb.MovieDetail
	err    error
}

// Catalog serves canned responses. Requests with nothing configured fail with
// a tmdb.DataNotAvailable error.
type Catalog struct {
	mu          sync.Mutex
	pages       map[pageKey]pageResponse
	details     map[int]detailResponse
	movieCalls  map[pageKey]int
	detailCalls map[int]int
}

var _ tmdb.Catalog = (*Catalog)(nil)

// New creates an empty Catalog
func New() *Catalog {
	return &Catalog{
		pages:       make(map[pageKey]pageResponse),
		details:     make(map[int]detailResponse),
		movieCalls:  make(map[pageKey]int),
		detailCalls: make(map[int]int),
	}
}

// SetMovies configures a successful page. totalPages is reported as given.
func (c *Catalog) SetMovies(kind tmdb.ListKind, page, totalPages int, movies ...tmdb.MovieSummary) {
	if movies == nil {
		movies = []tmdb.MovieSummary{}
	}
	c.SetPage(kind, &tmdb.PagedResult{
		Page:         page,
		Results:      movies,
		TotalPages:   totalPages,
		TotalResults: len(movies),
	})
}

// SetPage configures a successful page response
func (c *Catalog) SetPage(kind tmdb.ListKind, result *tmdb.PagedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[pageKey{kind, result.Page}] = pageResponse{result: result}
}

// SetMoviesError configures a failing page
func (c *Catalog) SetMoviesError(kind tmdb.ListKind, page int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[pageKey{kind, page}] = pageResponse{err: err}
}

// SetDetail configures a successful detail response
func (c *Catalog) SetDetail(movieID int, detail *tmdb.MovieDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.details[movieID] = detailResponse{detail: detail}
}

// SetDetailError configures a failing detail response
func (c *Catalog) SetDetailError(movieID int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.details[movieID] = detailResponse{err: err}
}

// FetchMovies implements tmdb.Catalog
func (c *Catalog) FetchMovies(ctx context.Context, kind tmdb.ListKind, page int) (*tmdb.PagedResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := pageKey{kind, page}
	c.movieCalls[key]++

	resp, ok := c.pages[key]
	if !ok {
		return nil, &tmdb.Error{Kind: tmdb.DataNotAvailable, Op: fmt.Sprintf("movies %s page %d", kind, page)}
	}
	if resp.err != nil {
		return nil, resp.err
	}

	// Hand out a copy so callers cannot alter the canned page.
	result := *resp.result
	result.Results = append([]tmdb.MovieSummary(nil), resp.result.Results...)
	if result.Results == nil {
		result.Results = []tmdb.MovieSummary{}
	}
	return &result, nil
}

// FetchMovieDetail implements tmdb.Catalog
func (c *Catalog) FetchMovieDetail(ctx context.Context, movieID int) (*tmdb.MovieDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.detailCalls[movieID]++

	resp, ok := c.details[movieID]
	if !ok {
		return nil, &tmdb.Error{Kind: tmdb.DataNotAvailable, Op: fmt.Sprintf("movie %d", movieID)}
	}
	if resp.err != nil {
		return nil, resp.err
	}

	detail := *resp.detail
	return &detail, nil
}

// MovieCalls returns how many times a page was requested
func (c *Catalog) MovieCalls(kind tmdb.ListKind, page int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movieCalls[pageKey{kind, page}]
}

// DetailCalls returns how many times a detail was requested
func (c *Catalog) DetailCalls(movieID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailCalls[movieID]
}

// Movie returns a fully populated summary for use as a fixture
func Movie(id int, title string) tmdb.MovieSummary {
	poster := fmt.Sprintf("/poster_%d.jpg", id)
	return tmdb.MovieSummary{
		ID:               id,
		Title:            title,
		OriginalTitle:    title,
		Overview:         "Test movie",
		ReleaseDate:      "2024-07-24",
		VoteAverage:      7.5,
		VoteCount:        200,
		PosterPath:       &poster,
		GenreIDs:         []int{28, 35},
		Popularity:       100,
		OriginalLanguage: "en",
	}
}
