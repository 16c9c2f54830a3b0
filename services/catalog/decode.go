package catalog

import (
	"encoding/json"
	"fmt"

	"cinevision/models"
)

// The catalog contract is strict: a response that fails these checks fails
// the whole call rather than returning partially-typed data. Unknown fields
// from the upstream API are ignored.

type movieDTO struct {
	ID           *int64   `json:"id"`
	Title        *string  `json:"title"`
	Overview     *string  `json:"overview"`
	ReleaseDate  *string  `json:"release_date"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	GenreIDs     []int64  `json:"genre_ids"`
	VoteAverage  *float64 `json:"vote_average"`
	VoteCount    *int64   `json:"vote_count"`
}

type genreDTO struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type detailsDTO struct {
	movieDTO
	Genres  []genreDTO `json:"genres"`
	Runtime *int       `json:"runtime"`
	Tagline *string    `json:"tagline"`
}

type castDTO struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Character   *string `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       *int    `json:"order"`
}

type crewDTO struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Job         *string `json:"job"`
	Department  *string `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

type creditsDTO struct {
	Cast []castDTO `json:"cast"`
	Crew []crewDTO `json:"crew"`
}

type pageDTO struct {
	Page         *int       `json:"page"`
	Results      []movieDTO `json:"results"`
	TotalPages   *int       `json:"total_pages"`
	TotalResults *int       `json:"total_results"`
}

func decodeMovie(dto movieDTO) (models.Movie, error) {
	if dto.ID == nil || *dto.ID <= 0 {
		return models.Movie{}, fmt.Errorf("movie missing id")
	}
	if dto.Title == nil {
		return models.Movie{}, fmt.Errorf("movie %d missing title", *dto.ID)
	}
	m := models.Movie{
		ID:           *dto.ID,
		Title:        *dto.Title,
		PosterPath:   dto.PosterPath,
		BackdropPath: dto.BackdropPath,
		GenreIDs:     dto.GenreIDs,
		VoteAverage:  dto.VoteAverage,
		VoteCount:    dto.VoteCount,
	}
	if dto.Overview != nil {
		m.Overview = *dto.Overview
	}
	if dto.ReleaseDate != nil {
		m.ReleaseDate = *dto.ReleaseDate
	}
	return m, nil
}

func decodeDetails(data []byte) (models.MovieDetails, error) {
	var dto detailsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return models.MovieDetails{}, fmt.Errorf("decode movie details: %w", err)
	}
	movie, err := decodeMovie(dto.movieDTO)
	if err != nil {
		return models.MovieDetails{}, fmt.Errorf("decode movie details: %w", err)
	}
	if dto.Genres == nil {
		return models.MovieDetails{}, fmt.Errorf("decode movie details: movie %d missing genres", movie.ID)
	}
	details := models.MovieDetails{
		Movie:   movie,
		Genres:  make([]models.Genre, 0, len(dto.Genres)),
		Runtime: dto.Runtime,
		Tagline: dto.Tagline,
	}
	for _, g := range dto.Genres {
		if g.ID == nil || g.Name == nil {
			return models.MovieDetails{}, fmt.Errorf("decode movie details: movie %d has malformed genre", movie.ID)
		}
		details.Genres = append(details.Genres, models.Genre{ID: *g.ID, Name: *g.Name})
	}
	return details, nil
}

func decodeCredits(data []byte) (models.Credits, error) {
	var dto creditsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return models.Credits{}, fmt.Errorf("decode credits: %w", err)
	}
	if dto.Cast == nil || dto.Crew == nil {
		return models.Credits{}, fmt.Errorf("decode credits: cast or crew missing")
	}
	credits := models.Credits{
		Cast: make([]models.CastMember, 0, len(dto.Cast)),
		Crew: make([]models.CrewMember, 0, len(dto.Crew)),
	}
	for _, c := range dto.Cast {
		if c.ID == nil || c.Name == nil {
			return models.Credits{}, fmt.Errorf("decode credits: malformed cast member")
		}
		member := models.CastMember{
			ID:          *c.ID,
			Name:        *c.Name,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		}
		if c.Character != nil {
			member.Character = *c.Character
		}
		credits.Cast = append(credits.Cast, member)
	}
	for _, c := range dto.Crew {
		if c.ID == nil || c.Name == nil || c.Job == nil || c.Department == nil {
			return models.Credits{}, fmt.Errorf("decode credits: malformed crew member")
		}
		credits.Crew = append(credits.Crew, models.CrewMember{
			ID:          *c.ID,
			Name:        *c.Name,
			Job:         *c.Job,
			Department:  *c.Department,
			ProfilePath: c.ProfilePath,
		})
	}
	return credits, nil
}

func decodePage(data []byte) (models.MoviePage, error) {
	var dto pageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return models.MoviePage{}, fmt.Errorf("decode movie page: %w", err)
	}
	if dto.Page == nil || dto.Results == nil {
		return models.MoviePage{}, fmt.Errorf("decode movie page: page or results missing")
	}
	page := models.MoviePage{
		Page:    *dto.Page,
		Results: make([]models.Movie, 0, len(dto.Results)),
	}
	if dto.TotalPages != nil {
		page.TotalPages = *dto.TotalPages
	}
	if dto.TotalResults != nil {
		page.TotalResults = *dto.TotalResults
	}
	for _, m := range dto.Results {
		movie, err := decodeMovie(m)
		if err != nil {
			return models.MoviePage{}, fmt.Errorf("decode movie page: %w", err)
		}
		page.Results = append(page.Results, movie)
	}
	return page, nil
}
