package tmdb

import (
	"fmt"
	"net/url"
	"strings"
)

// ListKind selects one of the catalog's movie lists
type ListKind int

const (
	// NowPlaying lists movies currently in theatres
	NowPlaying ListKind = iota + 1
	// Upcoming lists movies about to be released
	Upcoming
	// TopRated lists the highest rated movies
	TopRated
	// Featured lists theatrical and digital releases by descending popularity
	Featured
)

// ListKinds returns every list kind in display order
func ListKinds() []ListKind {
	return []ListKind{Featured, NowPlaying, Upcoming, TopRated}
}

type endpoint struct {
	name   string
	path   string
	params url.Values
	// localized endpoints get the client's language parameter
	localized bool
}

var endpoints = map[ListKind]endpoint{
	NowPlaying: {name: "now_playing", path: "movie/now_playing"},
	Upcoming:   {name: "upcoming", path: "movie/upcoming"},
	TopRated:   {name: "top_rated", path: "movie/top_rated"},
	Featured: {
		name: "featured",
		path: "discover/movie",
		params: url.Values{
			"include_adult":     {"false"},
			"include_video":     {"false"},
			"sort_by":           {"popularity.desc"},
			"with_release_type": {"2|3"},
		},
		localized: true,
	},
}

// String returns the string representation of a ListKind
func (k ListKind) String() string {
	if e, ok := endpoints[k]; ok {
		return e.name
	}
	return "unknown"
}

// Valid checks if k is one of the known list kinds
func (k ListKind) Valid() bool {
	_, ok := endpoints[k]
	return ok
}

// ParseListKind parses a list kind name. Dashes and underscores are
// interchangeable and "discover" is accepted for Featured.
func ParseListKind(s string) (ListKind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if name == "discover" {
		return Featured, nil
	}
	for kind, e := range endpoints {
		if e.name == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown list kind %q", s)
}
