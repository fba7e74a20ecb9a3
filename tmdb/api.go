package tmdb

import "context"

// Catalog defines the movie catalog operations callers depend on
type Catalog interface {
	// FetchMovies retrieves one page of a movie list
	FetchMovies(ctx context.Context, kind ListKind, page int) (*PagedResult, error)

	// FetchMovieDetail retrieves the detail record of a movie
	FetchMovieDetail(ctx context.Context, movieID int) (*MovieDetail, error)
}

// Result carries the outcome of an asynchronous fetch: a value or an error, never both.
type Result[T any] struct {
	Value T
	Err   error
}

// OK checks if the fetch succeeded
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// FetchMoviesAsync runs FetchMovies on its own goroutine and hands the outcome to
// done exactly once. done may run concurrently with the caller and with other
// completions; callers synchronize any state it touches.
func FetchMoviesAsync(ctx context.Context, c Catalog, kind ListKind, page int, done func(Result[*PagedResult])) {
	goFetch(func() (*PagedResult, error) {
		return c.FetchMovies(ctx, kind, page)
	}, done)
}

// FetchMovieDetailAsync is the asynchronous form of FetchMovieDetail, with the
// same delivery rules as FetchMoviesAsync.
func FetchMovieDetailAsync(ctx context.Context, c Catalog, movieID int, done func(Result[*MovieDetail])) {
	goFetch(func() (*MovieDetail, error) {
		return c.FetchMovieDetail(ctx, movieID)
	}, done)
}

func goFetch[T any](fetch func() (T, error), done func(Result[T])) {
	go func() {
		v, err := fetch()
		if err != nil {
			var zero T
			done(Result[T]{Value: zero, Err: err})
			return
		}
		done(Result[T]{Value: v})
	}()
}
