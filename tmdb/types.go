package tmdb

import "strconv"

// ImageBaseURL is the TMDB image CDN prefix; a size segment and the image path follow it.
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// Image sizes used for list posters and detail backdrops
const (
	PosterSize   = "w500"
	BackdropSize = "w780"
)

// MovieSummary is a movie as it appears in a list response
type MovieSummary struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	PosterPath       *string `json:"poster_path,omitempty"`
	BackdropPath     *string `json:"backdrop_path,omitempty"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	Video            bool    `json:"video"`
	OriginalLanguage string  `json:"original_language"`
}

// Year returns the release year, or 0 if the release date has none
func (m MovieSummary) Year() int {
	return releaseYear(m.ReleaseDate)
}

// HasGenre checks if the movie is tagged with the given genre id
func (m MovieSummary) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// PosterURL returns the poster URL at the given size, or "" without a poster
func (m MovieSummary) PosterURL(size string) string {
	return imageURL(m.PosterPath, size)
}

// BackdropURL returns the backdrop URL at the given size, or "" without a backdrop
func (m MovieSummary) BackdropURL(size string) string {
	return imageURL(m.BackdropPath, size)
}

// Genre is a named movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full record of a single movie
type MovieDetail struct {
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []Genre `json:"genres"`
	PosterPath   *string `json:"poster_path,omitempty"`
	BackdropPath *string `json:"backdrop_path,omitempty"`
	Tagline      string  `json:"tagline"`
	Status       string  `json:"status"`
}

// Year returns the release year, or 0 if the release date has none
func (d MovieDetail) Year() int {
	return releaseYear(d.ReleaseDate)
}

// GenreNames returns the genre names in upstream order
func (d MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// PosterURL returns the poster URL at the given size, or "" without a poster
func (d MovieDetail) PosterURL(size string) string {
	return imageURL(d.PosterPath, size)
}

// BackdropURL returns the backdrop URL at the given size, or "" without a backdrop
func (d MovieDetail) BackdropURL(size string) string {
	return imageURL(d.BackdropPath, size)
}

// PagedResult is one page of a movie list
type PagedResult struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// HasMorePages checks if there are more pages after this one
func (p *PagedResult) HasMorePages() bool {
	return p.Page < p.TotalPages
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func imageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	return ImageBaseURL + size + *path
}
