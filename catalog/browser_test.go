package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
	"github.com/s0up4200/marquee/tmdb/tmdbtest"
)

func TestBrowserNowPlayingScenario(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.NowPlaying, 1, 1, tmdbtest.Movie(1, "Deadpool & Wolverine"))

	b := NewBrowser(source, zerolog.Nop())
	_, err := b.LoadNext(context.Background(), tmdb.NowPlaying)
	require.NoError(t, err)

	movies := b.Movies(tmdb.NowPlaying)
	require.Len(t, movies, 1)
	assert.Equal(t, "Deadpool & Wolverine", movies[0].Title)
	assert.Equal(t, 1, b.Page(tmdb.NowPlaying))
	assert.False(t, b.HasMore(tmdb.NowPlaying))
}

func TestBrowserTopRatedNoResults(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.TopRated, 1, 0)

	b := NewBrowser(source, zerolog.Nop())
	loaded, err := b.LoadNext(context.Background(), tmdb.TopRated)
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.Empty(t, b.Movies(tmdb.TopRated))
}

func TestBrowserNoCannedResponse(t *testing.T) {
	b := NewBrowser(tmdbtest.New(), zerolog.Nop())

	_, err := b.LoadNext(context.Background(), tmdb.Upcoming)
	require.Error(t, err)
	assert.Equal(t, tmdb.DataNotAvailable, tmdb.KindOf(err))
}

func TestBrowserAppendsPages(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.Upcoming, 1, 2, tmdbtest.Movie(1, "One"), tmdbtest.Movie(2, "Two"))
	source.SetMovies(tmdb.Upcoming, 2, 2, tmdbtest.Movie(2, "Two"), tmdbtest.Movie(3, "Three"))

	b := NewBrowser(source, zerolog.Nop())
	ctx := context.Background()

	_, err := b.LoadNext(ctx, tmdb.Upcoming)
	require.NoError(t, err)
	assert.True(t, b.HasMore(tmdb.Upcoming))

	loaded, err := b.LoadNext(ctx, tmdb.Upcoming)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	// No de-duplication across pages.
	movies := b.Movies(tmdb.Upcoming)
	require.Len(t, movies, 4)
	assert.Equal(t, []string{"One", "Two", "Two", "Three"}, titles(movies))
	assert.Equal(t, 2, b.Page(tmdb.Upcoming))
	assert.False(t, b.HasMore(tmdb.Upcoming))
}

func TestBrowserFailureKeepsState(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.NowPlaying, 1, 3, tmdbtest.Movie(1, "One"))
	source.SetMoviesError(tmdb.NowPlaying, 2, tmdb.ErrData)

	b := NewBrowser(source, zerolog.Nop())
	ctx := context.Background()

	_, err := b.LoadNext(ctx, tmdb.NowPlaying)
	require.NoError(t, err)

	_, err = b.LoadNext(ctx, tmdb.NowPlaying)
	require.ErrorIs(t, err, tmdb.ErrData)
	assert.Len(t, b.Movies(tmdb.NowPlaying), 1)
	assert.Equal(t, 1, b.Page(tmdb.NowPlaying))

	// The failed page is retried by the next call.
	source.SetMovies(tmdb.NowPlaying, 2, 3, tmdbtest.Movie(2, "Two"))
	_, err = b.LoadNext(ctx, tmdb.NowPlaying)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Page(tmdb.NowPlaying))
	assert.Equal(t, 2, source.MovieCalls(tmdb.NowPlaying, 2))
}

func TestBrowserIndependentPageCounters(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.Featured, 1, 5, tmdbtest.Movie(10, "Featured One"))
	source.SetMovies(tmdb.Featured, 2, 5, tmdbtest.Movie(11, "Featured Two"))
	source.SetMovies(tmdb.TopRated, 1, 5, tmdbtest.Movie(20, "Top One"))

	b := NewBrowser(source, zerolog.Nop())
	ctx := context.Background()

	_, err := b.LoadNext(ctx, tmdb.Featured)
	require.NoError(t, err)
	_, err = b.LoadNext(ctx, tmdb.Featured)
	require.NoError(t, err)
	_, err = b.LoadNext(ctx, tmdb.TopRated)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Page(tmdb.Featured))
	assert.Equal(t, 1, b.Page(tmdb.TopRated))
	assert.Equal(t, 0, b.Page(tmdb.Upcoming))
	assert.Equal(t, []string{"Featured One", "Featured Two"}, titles(b.Movies(tmdb.Featured)))
	assert.Equal(t, []string{"Top One"}, titles(b.Movies(tmdb.TopRated)))
}

func TestBrowserReload(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.NowPlaying, 1, 2, tmdbtest.Movie(1, "One"))
	source.SetMovies(tmdb.NowPlaying, 2, 2, tmdbtest.Movie(2, "Two"))

	b := NewBrowser(source, zerolog.Nop())
	ctx := context.Background()

	_, err := b.LoadNext(ctx, tmdb.NowPlaying)
	require.NoError(t, err)
	_, err = b.LoadNext(ctx, tmdb.NowPlaying)
	require.NoError(t, err)

	_, err = b.Reload(ctx, tmdb.NowPlaying)
	require.NoError(t, err)
	assert.Equal(t, []string{"One"}, titles(b.Movies(tmdb.NowPlaying)))
	assert.Equal(t, 1, b.Page(tmdb.NowPlaying))
}

func TestBrowserMoviesReturnsCopy(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.NowPlaying, 1, 1, tmdbtest.Movie(1, "One"))

	b := NewBrowser(source, zerolog.Nop())
	_, err := b.LoadNext(context.Background(), tmdb.NowPlaying)
	require.NoError(t, err)

	movies := b.Movies(tmdb.NowPlaying)
	movies[0].Title = "changed"
	assert.Equal(t, "One", b.Movies(tmdb.NowPlaying)[0].Title)
}

func TestBrowserLoadAll(t *testing.T) {
	source := tmdbtest.New()
	for _, kind := range tmdb.ListKinds() {
		source.SetMovies(kind, 1, 1, tmdbtest.Movie(int(kind), kind.String()))
	}

	b := NewBrowser(source, zerolog.Nop())
	require.NoError(t, b.LoadAll(context.Background()))

	for _, kind := range tmdb.ListKinds() {
		assert.Equal(t, []string{kind.String()}, titles(b.Movies(kind)))
	}
}

func TestBrowserLoadAllReportsFailure(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.NowPlaying, 1, 1, tmdbtest.Movie(1, "One"))

	b := NewBrowser(source, zerolog.Nop())
	err := b.LoadAll(context.Background(), tmdb.NowPlaying, tmdb.Upcoming)
	require.Error(t, err)
	assert.ErrorIs(t, err, tmdb.ErrDataNotAvailable)
	assert.Contains(t, err.Error(), "upcoming")

	// The successful load is kept.
	assert.Len(t, b.Movies(tmdb.NowPlaying), 1)
}

// blockingCatalog holds FetchMovies until released
type blockingCatalog struct {
	*tmdbtest.Catalog
	started chan struct{}
	release chan struct{}
}

func (c *blockingCatalog) FetchMovies(ctx context.Context, kind tmdb.ListKind, page int) (*tmdb.PagedResult, error) {
	c.started <- struct{}{}
	<-c.release
	return c.Catalog.FetchMovies(ctx, kind, page)
}

func TestBrowserRejectsOverlappingLoads(t *testing.T) {
	inner := tmdbtest.New()
	inner.SetMovies(tmdb.NowPlaying, 1, 2, tmdbtest.Movie(1, "One"))
	source := &blockingCatalog{Catalog: inner, started: make(chan struct{}, 1), release: make(chan struct{})}

	b := NewBrowser(source, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := b.LoadNext(context.Background(), tmdb.NowPlaying)
		assert.NoError(t, err)
	}()

	<-source.started
	_, err := b.LoadNext(context.Background(), tmdb.NowPlaying)
	assert.ErrorIs(t, err, ErrLoadInProgress)

	close(source.release)
	wg.Wait()

	assert.Equal(t, 1, inner.MovieCalls(tmdb.NowPlaying, 1))
	assert.Len(t, b.Movies(tmdb.NowPlaying), 1)
}

func TestBrowserConcurrentKinds(t *testing.T) {
	source := tmdbtest.New()
	for page := 1; page <= 3; page++ {
		for _, kind := range tmdb.ListKinds() {
			source.SetMovies(kind, page, 3, tmdbtest.Movie(page, kind.String()))
		}
	}

	b := NewBrowser(source, zerolog.Nop())

	var wg sync.WaitGroup
	for _, kind := range tmdb.ListKinds() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b.HasMore(kind) {
				_, err := b.LoadNext(context.Background(), kind)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	for _, kind := range tmdb.ListKinds() {
		assert.Len(t, b.Movies(kind), 3)
		assert.Equal(t, 3, b.Page(kind))
	}
}

func titles(movies []tmdb.MovieSummary) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestBrowserStartAt(t *testing.T) {
	source := tmdbtest.New()
	source.SetMovies(tmdb.TopRated, 1, 10, tmdbtest.Movie(1, "One"))
	source.SetMovies(tmdb.TopRated, 4, 10, tmdbtest.Movie(4, "Four"))

	b := NewBrowser(source, zerolog.Nop())
	ctx := context.Background()

	_, err := b.LoadNext(ctx, tmdb.TopRated)
	require.NoError(t, err)

	require.NoError(t, b.StartAt(tmdb.TopRated, 4))
	assert.Empty(t, b.Movies(tmdb.TopRated))
	assert.True(t, b.HasMore(tmdb.TopRated))

	_, err = b.LoadNext(ctx, tmdb.TopRated)
	require.NoError(t, err)
	assert.Equal(t, []string{"Four"}, titles(b.Movies(tmdb.TopRated)))
	assert.Equal(t, 4, b.Page(tmdb.TopRated))

	assert.Error(t, b.StartAt(tmdb.TopRated, 0))
}
