package overseerr

import (
	"context"
)

// API defines the interface for Overseerr operations
type API interface {
	// TestConnection verifies the client can connect to Overseerr
	TestConnection(ctx context.Context) error

	// MovieRequests retrieves all movie requests
	MovieRequests(ctx context.Context) ([]MediaRequest, error)

	// RequestMovie creates a request for the movie with the given TMDB id
	RequestMovie(ctx context.Context, tmdbID int) (*MediaRequest, error)
}

var _ API = (*Client)(nil)
