package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
	"github.com/s0up4200/marquee/tmdb/tmdbtest"
)

func TestFetchDetails(t *testing.T) {
	source := tmdbtest.New()
	source.SetDetail(550, &tmdb.MovieDetail{Title: "Fight Club", Runtime: 139})
	source.SetDetail(13, &tmdb.MovieDetail{Title: "Forrest Gump", Runtime: 142})
	source.SetDetailError(680, tmdb.ErrDecoding)

	ids := []int{550, 680, 13, 1}
	results := FetchDetails(context.Background(), source, ids, zerolog.Nop())
	require.Len(t, results, len(ids))

	for i, id := range ids {
		assert.Equal(t, id, results[i].MovieID)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, "Fight Club", results[0].Detail.Title)

	assert.ErrorIs(t, results[1].Err, tmdb.ErrDecoding)
	assert.Nil(t, results[1].Detail)

	require.NoError(t, results[2].Err)
	assert.Equal(t, 142, results[2].Detail.Runtime)

	assert.Equal(t, tmdb.DataNotAvailable, tmdb.KindOf(results[3].Err))

	for _, id := range ids {
		assert.Equal(t, 1, source.DetailCalls(id))
	}
}

func TestFetchDetailsEmpty(t *testing.T) {
	results := FetchDetails(context.Background(), tmdbtest.New(), nil, zerolog.Nop())
	assert.Empty(t, results)
}

// orderedCatalog fails movie 1 and serves movie 2 only after that failure
type orderedCatalog struct {
	tmdb.Catalog
	failed chan struct{}
}

func (c *orderedCatalog) FetchMovieDetail(ctx context.Context, movieID int) (*tmdb.MovieDetail, error) {
	if movieID == 1 {
		close(c.failed)
		return nil, errors.New("boom")
	}
	<-c.failed
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &tmdb.MovieDetail{Title: "Still here"}, nil
}

func TestFetchDetailsFailureDoesNotCancelOthers(t *testing.T) {
	source := &orderedCatalog{failed: make(chan struct{})}

	results := FetchDetails(context.Background(), source, []int{1, 2}, zerolog.Nop())
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "Still here", results[1].Detail.Title)
}
