package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/tmdb"
)

// ErrLoadInProgress is returned when a list is already fetching its next page
var ErrLoadInProgress = errors.New("list is already loading")

// list is the accumulated state of one ListKind
type list struct {
	page       int // last page loaded, 0 before the first load
	totalPages int
	movies     []tmdb.MovieSummary
	loading    bool
}

// Browser pages through the catalog lists and accumulates what it has loaded.
// Each list kind keeps its own page counter.
type Browser struct {
	source tmdb.Catalog
	logger zerolog.Logger

	mu    sync.Mutex
	lists map[tmdb.ListKind]*list
}

// NewBrowser creates a Browser on top of a catalog
func NewBrowser(source tmdb.Catalog, logger zerolog.Logger) *Browser {
	return &Browser{
		source: source,
		logger: logger,
		lists:  make(map[tmdb.ListKind]*list),
	}
}

// LoadNext fetches the page after the last one loaded for kind and appends its
// movies. On failure the accumulated list and the page counter are unchanged.
func (b *Browser) LoadNext(ctx context.Context, kind tmdb.ListKind) ([]tmdb.MovieSummary, error) {
	l, page, err := b.begin(kind, false)
	if err != nil {
		return nil, err
	}

	result, err := b.source.FetchMovies(ctx, kind, page)

	b.mu.Lock()
	defer b.mu.Unlock()
	l.loading = false

	if err != nil {
		b.logger.Warn().Err(err).Str("kind", kind.String()).Int("page", page).Msg("Failed to load movies")
		return nil, err
	}

	l.page = page
	l.totalPages = result.TotalPages
	l.movies = append(l.movies, result.Results...)

	b.logger.Debug().
		Str("kind", kind.String()).
		Int("page", page).
		Int("count", len(result.Results)).
		Int("total", len(l.movies)).
		Msg("Loaded movies")

	return result.Results, nil
}

// Reload fetches the first page of kind and replaces the accumulated list with it
func (b *Browser) Reload(ctx context.Context, kind tmdb.ListKind) ([]tmdb.MovieSummary, error) {
	l, _, err := b.begin(kind, true)
	if err != nil {
		return nil, err
	}

	result, err := b.source.FetchMovies(ctx, kind, 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	l.loading = false

	if err != nil {
		b.logger.Warn().Err(err).Str("kind", kind.String()).Msg("Failed to reload movies")
		return nil, err
	}

	l.page = 1
	l.totalPages = result.TotalPages
	l.movies = append([]tmdb.MovieSummary(nil), result.Results...)
	return result.Results, nil
}

// LoadAll loads the next page of every given kind concurrently. All loads run
// to completion; the first error is returned.
func (b *Browser) LoadAll(ctx context.Context, kinds ...tmdb.ListKind) error {
	if len(kinds) == 0 {
		kinds = tmdb.ListKinds()
	}

	var g errgroup.Group
	for _, kind := range kinds {
		g.Go(func() error {
			if _, err := b.LoadNext(ctx, kind); err != nil {
				return fmt.Errorf("load %s: %w", kind, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// StartAt discards what was loaded for kind so that the next LoadNext fetches page
func (b *Browser) StartAt(kind tmdb.ListKind, page int) error {
	if page < 1 {
		return fmt.Errorf("invalid page %d", page)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if l, ok := b.lists[kind]; ok && l.loading {
		return ErrLoadInProgress
	}
	b.lists[kind] = &list{page: page - 1, totalPages: page}
	return nil
}

// Movies returns a copy of the movies accumulated for kind
func (b *Browser) Movies(kind tmdb.ListKind) []tmdb.MovieSummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[kind]
	if !ok {
		return []tmdb.MovieSummary{}
	}
	return append([]tmdb.MovieSummary{}, l.movies...)
}

// Page returns the last page loaded for kind, 0 if none
func (b *Browser) Page(kind tmdb.ListKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l, ok := b.lists[kind]; ok {
		return l.page
	}
	return 0
}

// HasMore checks if kind has pages left to load. A list never loaded has more.
func (b *Browser) HasMore(kind tmdb.ListKind) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[kind]
	if !ok || l.page == 0 {
		return true
	}
	return l.page < l.totalPages
}

// begin marks kind as loading and returns the page to fetch
func (b *Browser) begin(kind tmdb.ListKind, reload bool) (*list, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[kind]
	if !ok {
		l = &list{}
		b.lists[kind] = l
	}
	if l.loading {
		return nil, 0, ErrLoadInProgress
	}
	l.loading = true

	if reload {
		return l, 1, nil
	}
	return l, l.page + 1, nil
}
