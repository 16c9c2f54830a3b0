package models

import (
	"strconv"
	"strings"
)

// Movie is a single catalog record as returned by the TMDB list endpoints.
// Identity is the numeric TMDB id; everything else is display metadata.
type Movie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	GenreIDs     []int64  `json:"genre_ids,omitempty"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`
	VoteCount    *int64   `json:"vote_count,omitempty"`
}

// Year parses the release year out of ReleaseDate. Returns 0 when the date is
// absent or malformed.
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetails extends Movie with the fields only available from the
// per-movie detail endpoint. Runtime and Tagline are nullable upstream.
type MovieDetails struct {
	Movie
	Genres  []Genre `json:"genres"`
	Runtime *int    `json:"runtime"`
	Tagline *string `json:"tagline"`
}

type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character,omitempty"`
	ProfilePath *string `json:"profile_path"`
	Order       *int    `json:"order,omitempty"`
}

type CrewMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// Credits holds the ordered cast and crew lists for a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Director returns the first crew member whose job is "Director", or nil.
// Co-directed films resolve to whichever entry the catalog lists first.
func (c Credits) Director() *CrewMember {
	for i := range c.Crew {
		if c.Crew[i].Job == "Director" {
			return &c.Crew[i]
		}
	}
	return nil
}

// MoviePage is one page of a paginated catalog listing.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// TitleMatches reports whether the movie's title equals the given title,
// case-insensitively.
func (m Movie) TitleMatches(title string) bool {
	return strings.EqualFold(m.Title, title)
}
