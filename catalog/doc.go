// Package catalog holds the caller-side state built on top of the TMDB client:
// per-list pagination and aggregation, the favorites mapping, bounded detail
// fan-out and console formatting.
//
// The tmdb client is stateless. A Browser remembers which page of each list was
// loaded last and accumulates the movies it has seen, one independent counter
// per list kind. Completions may arrive concurrently, so every Browser and
// Favorites method is safe for concurrent use.
package catalog
