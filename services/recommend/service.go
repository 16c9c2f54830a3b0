// Package recommend builds the user's shortlist: catalog similar/recommended
// titles for their top favorites blended with weekly trending, deduplicated
// and hydrated for display.
package recommend

import (
	"context"
	"log"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"cinevision/models"
)

// shortlistSize is how many movies the shortlist presents.
const shortlistSize = 3

// topFavorites is how many favorites seed the candidate list.
const topFavorites = 3

// personalizedPicks is how many of the shortlist slots come from the
// favorite-seeded candidates when favorites exist; the rest comes from
// trending.
const personalizedPicks = 2

type catalogService interface {
	SimilarMovies(ctx context.Context, movieID int64, page int) (models.MoviePage, error)
	MovieRecommendations(ctx context.Context, movieID int64, page int) (models.MoviePage, error)
	TrendingMovies(ctx context.Context, window string, page int) (models.MoviePage, error)
	MovieDetails(ctx context.Context, movieID int64) (models.MovieDetails, error)
	MovieCredits(ctx context.Context, movieID int64) (models.Credits, error)
}

type favoriteSource interface {
	FavoriteMovies() []models.Rating
}

type Service struct {
	catalog   catalogService
	favorites favoriteSource
}

func NewService(catalog catalogService, favorites favoriteSource) *Service {
	return &Service{catalog: catalog, favorites: favorites}
}

// Shortlist produces up to 3 hydrated recommendations.
//
// Favorites are sorted by rating descending with ties broken by timestamp
// descending, and the top 3 seed the candidate list: for each, its similar
// list then its recommendation list, skipping ids already seen and the
// favorite itself. Weekly trending is then filtered against the same seen
// set. With favorites the shortlist takes 2 candidates + 1 trending; without,
// 3 trending. Short selections backfill from candidates-then-trending,
// excluding only ids already selected.
func (s *Service) Shortlist(ctx context.Context) ([]models.RecommendedMovie, error) {
	favorites := s.favorites.FavoriteMovies()

	seen := make(map[int64]struct{})
	var candidates []models.Movie

	if len(favorites) > 0 {
		sort.SliceStable(favorites, func(i, j int) bool {
			if favorites[i].Rating != favorites[j].Rating {
				return favorites[i].Rating > favorites[j].Rating
			}
			return favorites[i].Timestamp > favorites[j].Timestamp
		})
		top := favorites
		if len(top) > topFavorites {
			top = top[:topFavorites]
		}

		for _, favorite := range top {
			similar, err := s.catalog.SimilarMovies(ctx, favorite.MovieID, 1)
			if err != nil {
				log.Printf("[recommend] failed to get similar titles for movie %d: %v", favorite.MovieID, err)
				continue
			}
			recommended, err := s.catalog.MovieRecommendations(ctx, favorite.MovieID, 1)
			if err != nil {
				log.Printf("[recommend] failed to get recommendations for movie %d: %v", favorite.MovieID, err)
				continue
			}

			combined := make([]models.Movie, 0, len(similar.Results)+len(recommended.Results))
			combined = append(combined, similar.Results...)
			combined = append(combined, recommended.Results...)
			for _, movie := range combined {
				if _, dup := seen[movie.ID]; dup || movie.ID == favorite.MovieID {
					continue
				}
				seen[movie.ID] = struct{}{}
				candidates = append(candidates, movie)
			}
		}
	}

	trendingPage, err := s.catalog.TrendingMovies(ctx, "week", 1)
	if err != nil {
		return nil, err
	}
	trending := make([]models.Movie, 0, len(trendingPage.Results))
	for _, movie := range trendingPage.Results {
		if _, dup := seen[movie.ID]; !dup {
			trending = append(trending, movie)
		}
	}

	selected := s.buildShortlist(len(favorites) > 0, candidates, trending)
	return s.hydrate(ctx, selected), nil
}

// buildShortlist applies the selection policy and backfill. The backfill
// pool deliberately checks against the selected list only, not the full
// seen set.
func (s *Service) buildShortlist(hasFavorites bool, candidates, trending []models.Movie) []models.Movie {
	var selected []models.Movie
	if hasFavorites {
		selected = append(selected, take(candidates, personalizedPicks)...)
		selected = append(selected, take(trending, shortlistSize-personalizedPicks)...)
	} else {
		selected = take(trending, shortlistSize)
	}

	if len(selected) < shortlistSize {
		for _, movie := range append(append([]models.Movie(nil), candidates...), trending...) {
			if len(selected) >= shortlistSize {
				break
			}
			if containsID(selected, movie.ID) {
				continue
			}
			selected = append(selected, movie)
		}
	}
	return selected
}

// hydrate loads details and credits for every selected movie in parallel.
// A failed pair leaves the movie in the list without details.
func (s *Service) hydrate(ctx context.Context, selected []models.Movie) []models.RecommendedMovie {
	results := make([]models.RecommendedMovie, len(selected))

	p := pool.New().WithMaxGoroutines(shortlistSize + 1)
	for i, movie := range selected {
		p.Go(func() {
			results[i] = s.hydrateOne(ctx, movie)
		})
	}
	p.Wait()
	return results
}

func (s *Service) hydrateOne(ctx context.Context, movie models.Movie) models.RecommendedMovie {
	hydrated := models.RecommendedMovie{Movie: movie}

	var (
		details    models.MovieDetails
		credits    models.Credits
		detailsErr error
		creditsErr error
	)
	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		details, detailsErr = s.catalog.MovieDetails(ctx, movie.ID)
	})
	p.Go(func() {
		credits, creditsErr = s.catalog.MovieCredits(ctx, movie.ID)
	})
	p.Wait()

	if detailsErr != nil || creditsErr != nil {
		log.Printf("[recommend] failed to load details for %q: details=%v credits=%v", movie.Title, detailsErr, creditsErr)
		return hydrated
	}
	hydrated.Details = &details
	hydrated.Credits = &credits
	return hydrated
}

func take(movies []models.Movie, n int) []models.Movie {
	if len(movies) < n {
		n = len(movies)
	}
	return movies[:n]
}

func containsID(movies []models.Movie, id int64) bool {
	for _, m := range movies {
		if m.ID == id {
			return true
		}
	}
	return false
}
