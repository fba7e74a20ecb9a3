package catalog

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/tmdb"
)

// DefaultDetailConcurrency bounds concurrent detail requests
const DefaultDetailConcurrency = 5

// DetailResult pairs a movie id with its fetched detail or the failure
type DetailResult struct {
	MovieID int
	Detail  *tmdb.MovieDetail
	Err     error
}

// FetchDetails fetches the detail of every id with bounded concurrency. Results
// come back in the order of ids; individual failures do not stop the others.
func FetchDetails(ctx context.Context, source tmdb.Catalog, ids []int, logger zerolog.Logger) []DetailResult {
	results := make([]DetailResult, len(ids))
	if len(ids) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(DefaultDetailConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			detail, err := source.FetchMovieDetail(ctx, id)
			if err != nil {
				logger.Warn().
					Err(err).
					Int("movie_id", id).
					Msg("Failed to get movie detail")
			}

			results[i] = DetailResult{MovieID: id, Detail: detail, Err: err}
			return nil
		})
	}

	// Failures are reported per id, so Wait never returns an error.
	_ = g.Wait()
	return results
}
