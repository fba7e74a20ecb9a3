package library

import (
	"context"

	"golift.io/starr/radarr"
)

// RadarrAPI is the subset of the Radarr API the library lookup needs
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	Ping() error
}

var _ RadarrAPI = (*radarr.Radarr)(nil)
