package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"cinevision/models"
)

// summaryLimit caps how many recent ratings go into the prompt.
const summaryLimit = 10

type catalogService interface {
	SearchMovies(ctx context.Context, query string, page int) (models.MoviePage, error)
	MovieDetails(ctx context.Context, movieID int64) (models.MovieDetails, error)
	MovieCredits(ctx context.Context, movieID int64) (models.Credits, error)
}

type ratingSource interface {
	AllRatings() []models.Rating
}

// Service composes the chat-completion client with the catalog and the
// user's rating history.
type Service struct {
	client  *Client
	catalog catalogService
	ratings ratingSource
}

func NewService(client *Client, catalog catalogService, ratings ratingSource) *Service {
	return &Service{client: client, catalog: catalog, ratings: ratings}
}

// GetRecommendations returns at most 3 suggestions for the free-text input.
// It never fails: without an API key it returns an empty list with no network
// call, and any API or parse failure lands on the deterministic keyword
// fallback.
func (s *Service) GetRecommendations(ctx context.Context, input string) []models.AIRecommendation {
	if !s.client.IsConfigured() {
		log.Printf("[ai] api key not configured, skipping request")
		return []models.AIRecommendation{}
	}

	prompt := fmt.Sprintf(`Please generate the top three movie recommendations for someone with:
(A) The request: %q
(B) The following movie ratings:
%s

Return only movie titles and years in your response in this format:
1. Movie Title (Year)
2. Movie Title (Year)
3. Movie Title (Year)`, input, s.buildRatingsSummary(ctx))

	content, err := s.client.complete(ctx, prompt)
	if err != nil {
		log.Printf("[ai] completion failed, using fallback: %v", err)
		return fallbackRecommendations(input)
	}

	recs := parseRecommendations(content)
	if len(recs) == 0 {
		log.Printf("[ai] no recommendations parsed from reply, using fallback")
		return fallbackRecommendations(input)
	}
	return recs
}

// buildRatingsSummary renders the user's 10 most-recent ratings as
// "title, year, director, rating" CSV rows. Rows whose detail lookup fails
// are omitted rather than replaced with placeholders.
func (s *Service) buildRatingsSummary(ctx context.Context) string {
	ratings := s.ratings.AllRatings()
	if len(ratings) == 0 {
		return "No ratings yet"
	}
	if len(ratings) > summaryLimit {
		ratings = ratings[:summaryLimit]
	}

	lines := []string{"Movie Name, Year, Director, Rating"}
	for _, rating := range ratings {
		details, err := s.catalog.MovieDetails(ctx, rating.MovieID)
		if err != nil {
			log.Printf("[ai] failed to get details for movie %d: %v", rating.MovieID, err)
			continue
		}
		credits, err := s.catalog.MovieCredits(ctx, rating.MovieID)
		if err != nil {
			log.Printf("[ai] failed to get credits for movie %d: %v", rating.MovieID, err)
			continue
		}

		director := "Unknown"
		if d := credits.Director(); d != nil {
			director = d.Name
		}
		year := "Unknown"
		if y := details.Year(); y > 0 {
			year = fmt.Sprintf("%d", y)
		}
		lines = append(lines, fmt.Sprintf("%s, %s, %s, %d", details.Title, year, director, rating.Rating))
	}
	return strings.Join(lines, "\n")
}

// Resolve looks each suggestion up in the catalog and hydrates the match with
// details and credits. Suggestions that resolve to nothing are dropped;
// result order follows the input.
func (s *Service) Resolve(ctx context.Context, recs []models.AIRecommendation) []models.RecommendedMovie {
	resolved := make([]*models.RecommendedMovie, len(recs))

	p := pool.New().WithMaxGoroutines(len(recs) + 1)
	for i, rec := range recs {
		p.Go(func() {
			resolved[i] = s.resolveOne(ctx, rec)
		})
	}
	p.Wait()

	movies := make([]models.RecommendedMovie, 0, len(recs))
	for _, m := range resolved {
		if m != nil {
			movies = append(movies, *m)
		}
	}
	return movies
}

func (s *Service) resolveOne(ctx context.Context, rec models.AIRecommendation) *models.RecommendedMovie {
	query := rec.Title
	if rec.Year > 0 {
		query = fmt.Sprintf("%s %d", rec.Title, rec.Year)
	}

	page, err := s.catalog.SearchMovies(ctx, query, 1)
	if err != nil {
		log.Printf("[ai] failed to find movie %q: %v", rec.Title, err)
		return nil
	}
	if len(page.Results) == 0 {
		return nil
	}

	// Prefer an exact title (and year, when known) match; otherwise the
	// catalog's first result.
	match := page.Results[0]
	for _, m := range page.Results {
		if !m.TitleMatches(rec.Title) {
			continue
		}
		if rec.Year > 0 && m.Year() != 0 && m.Year() != rec.Year {
			continue
		}
		match = m
		break
	}

	movie := models.RecommendedMovie{Movie: match}
	details, err := s.catalog.MovieDetails(ctx, match.ID)
	if err != nil {
		log.Printf("[ai] failed to load details for %q: %v", match.Title, err)
		return &movie
	}
	credits, err := s.catalog.MovieCredits(ctx, match.ID)
	if err != nil {
		log.Printf("[ai] failed to load credits for %q: %v", match.Title, err)
		return &movie
	}
	movie.Details = &details
	movie.Credits = &credits
	return &movie
}
