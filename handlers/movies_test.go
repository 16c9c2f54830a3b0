package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"cinevision/models"
	"cinevision/services/catalog"
)

type fakeCatalog struct {
	searchFn    func(query string, page int) (models.MoviePage, error)
	detailsFn   func(movieID int64) (models.MovieDetails, error)
	creditsFn   func(movieID int64) (models.Credits, error)
	trendingFn  func(window string, page int) (models.MoviePage, error)
	cacheClears int
}

func (f *fakeCatalog) SearchMovies(ctx context.Context, query string, page int) (models.MoviePage, error) {
	return f.searchFn(query, page)
}

func (f *fakeCatalog) MovieDetails(ctx context.Context, movieID int64) (models.MovieDetails, error) {
	return f.detailsFn(movieID)
}

func (f *fakeCatalog) MovieCredits(ctx context.Context, movieID int64) (models.Credits, error) {
	return f.creditsFn(movieID)
}

func (f *fakeCatalog) TrendingMovies(ctx context.Context, window string, page int) (models.MoviePage, error) {
	return f.trendingFn(window, page)
}

func (f *fakeCatalog) ClearCache() {
	f.cacheClears++
}

func moviesRouter(c catalogService) *mux.Router {
	h := NewMoviesHandler(c)
	r := mux.NewRouter()
	r.HandleFunc("/api/movies/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/suggest", h.Suggest).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/trending", h.Trending).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/cache", h.ClearCache).Methods(http.MethodDelete)
	r.HandleFunc("/api/movies/{movieID}", h.Details).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/{movieID}/credits", h.Credits).Methods(http.MethodGet)
	return r
}

func TestSearchMissingQuery(t *testing.T) {
	router := moviesRouter(&fakeCatalog{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestSearchPassesQueryAndPage(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		searchFn: func(query string, page int) (models.MoviePage, error) {
			if query != "inception" || page != 2 {
				t.Fatalf("unexpected search args: %q page %d", query, page)
			}
			return models.MoviePage{Page: 2, Results: []models.Movie{{ID: 1, Title: "Inception"}}}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search?q=inception&page=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var page models.MoviePage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "Inception" {
		t.Fatalf("unexpected body: %+v", page)
	}
}

func TestSearchDegradesWithoutAPIKey(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		searchFn: func(query string, page int) (models.MoviePage, error) {
			return models.MoviePage{}, catalog.ErrNotConfigured
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search?q=x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var page models.MoviePage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Results == nil || len(page.Results) != 0 {
		t.Fatalf("expected empty results array, got %+v", page)
	}
}

func TestSuggestCapsResults(t *testing.T) {
	movies := make([]models.Movie, 15)
	for i := range movies {
		movies[i] = models.Movie{ID: int64(i + 1), Title: fmt.Sprintf("Movie %d", i+1)}
	}
	router := moviesRouter(&fakeCatalog{
		searchFn: func(query string, page int) (models.MoviePage, error) {
			if page != 1 {
				t.Fatalf("suggest should always use page 1, got %d", page)
			}
			return models.MoviePage{Page: 1, Results: movies}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/suggest?q=mo", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var suggestions []models.Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &suggestions); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(suggestions) != 8 {
		t.Fatalf("expected 8 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].ID != 1 || suggestions[7].ID != 8 {
		t.Fatalf("expected first 8 results in order, got %+v", suggestions)
	}
}

func TestDetailsInvalidID(t *testing.T) {
	router := moviesRouter(&fakeCatalog{})

	for _, path := range []string{"/api/movies/abc", "/api/movies/-5"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d, want 400", path, rec.Code)
		}
	}
}

func TestDetailsUpstream404(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		detailsFn: func(movieID int64) (models.MovieDetails, error) {
			return models.MovieDetails{}, &catalog.StatusError{Code: http.StatusNotFound}
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/999", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
}

func TestDetailsUpstreamFailureIsBadGateway(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		detailsFn: func(movieID int64) (models.MovieDetails, error) {
			return models.MovieDetails{}, &catalog.StatusError{Code: http.StatusInternalServerError}
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/999", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("got %d, want 502", rec.Code)
	}
}

func TestCreditsRoute(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		creditsFn: func(movieID int64) (models.Credits, error) {
			if movieID != 550 {
				t.Fatalf("unexpected movie id %d", movieID)
			}
			return models.Credits{
				Cast: []models.CastMember{{ID: 1, Name: "Edward Norton", Character: "The Narrator"}},
				Crew: []models.CrewMember{{ID: 2, Name: "David Fincher", Job: "Director", Department: "Directing"}},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/550/credits", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var credits models.Credits
	if err := json.Unmarshal(rec.Body.Bytes(), &credits); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if d := credits.Director(); d == nil || d.Name != "David Fincher" {
		t.Fatalf("unexpected credits: %+v", credits)
	}
}

func TestDetailsDegradesWithoutAPIKey(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		detailsFn: func(movieID int64) (models.MovieDetails, error) {
			return models.MovieDetails{}, catalog.ErrNotConfigured
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/27205", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var details models.MovieDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if details.ID != 0 || details.Genres == nil {
		t.Fatalf("expected empty placeholder details, got %+v", details)
	}
}

func TestCreditsDegradeWithoutAPIKey(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		creditsFn: func(movieID int64) (models.Credits, error) {
			return models.Credits{}, catalog.ErrNotConfigured
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/27205/credits", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var credits models.Credits
	if err := json.Unmarshal(rec.Body.Bytes(), &credits); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(credits.Cast) != 0 || len(credits.Crew) != 0 {
		t.Fatalf("expected empty credits, got %+v", credits)
	}
}

func TestClearCacheEndpoint(t *testing.T) {
	fake := &fakeCatalog{}
	router := moviesRouter(fake)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/movies/cache", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("got %d, want 204", rec.Code)
	}
	if fake.cacheClears != 1 {
		t.Fatalf("expected one cache clear, got %d", fake.cacheClears)
	}
}

func TestTrendingPassesWindow(t *testing.T) {
	router := moviesRouter(&fakeCatalog{
		trendingFn: func(window string, page int) (models.MoviePage, error) {
			if window != "day" {
				t.Fatalf("unexpected window %q", window)
			}
			return models.MoviePage{Page: 1, Results: []models.Movie{{ID: 3, Title: "Trending"}}}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/trending?window=day", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
}
