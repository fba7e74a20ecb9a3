// Package overseerr submits and looks up movie requests on an Overseerr
// instance.
//
// Overseerr identifies movies by their TMDB id, so movies found in the catalog
// can be requested directly:
//
//	client, err := overseerr.NewClient("https://overseerr.example.com", apiKey, logger)
//	if err != nil {
//		return err
//	}
//	req, err := client.RequestMovie(ctx, 533535)
//
// API failures are returned as *APIError; IsNotFound and IsUnauthorized
// classify them.
package overseerr
