// Package tmdb provides a client for the read-only movie endpoints of The Movie
// Database (TMDB) REST API v3.
//
// The client covers a small closed set of requests: the now-playing, upcoming,
// top-rated and featured (discover by popularity) movie lists, and the detail
// record of a single movie. Responses are decoded strictly into typed records.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		os.Getenv("TMDB_TOKEN"),
//		logger,
//		tmdb.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.FetchMovies(ctx, tmdb.NowPlaying, 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Every failure returned by the client is a *Error carrying exactly one
// ErrorKind:
//
//   - InvalidURL: the configured base URL is malformed
//   - URLError: the request for a call could not be built
//   - DataError: transport failure, non-2xx status or empty body
//   - DecodingError: the body does not match the expected schema
//   - DataNotAvailable: a test double has no canned response
//
// Kinds can be matched with errors.Is against the package sentinels:
//
//	if errors.Is(err, tmdb.ErrDecoding) {
//		// upstream schema changed
//	}
//
// The client never retries, caches or de-duplicates requests.
package tmdb
