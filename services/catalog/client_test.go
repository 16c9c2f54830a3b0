package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

const searchBody = `{"page":1,"results":[{"id":27205,"title":"Inception","overview":"A thief...","release_date":"2010-07-15","poster_path":"/poster.jpg","backdrop_path":null,"vote_average":8.4,"vote_count":34000}],"total_pages":1,"total_results":1}`

func TestSearchMoviesUsesCacheWithinTTL(t *testing.T) {
	var calls int
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			if got := req.URL.Query().Get("include_adult"); got != "false" {
				t.Fatalf("expected include_adult=false, got %q", got)
			}
			if got := req.URL.Query().Get("api_key"); got != "test-key" {
				t.Fatalf("expected api key on request, got %q", got)
			}
			return jsonResponse(http.StatusOK, searchBody), nil
		}),
	}

	current := time.Unix(0, 0)
	client := New("test-key", httpc, 5*time.Minute)
	client.cache.now = func() time.Time { return current }

	first, err := client.SearchMovies(context.Background(), "Inception", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(first.Results) != 1 || first.Results[0].ID != 27205 {
		t.Fatalf("unexpected results: %+v", first.Results)
	}

	// Identical call within the TTL: served from cache, no network.
	if _, err := client.SearchMovies(context.Background(), "Inception", 1); err != nil {
		t.Fatalf("cached search failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 network call within TTL, got %d", calls)
	}

	// After expiry a second network call happens.
	current = current.Add(6 * time.Minute)
	if _, err := client.SearchMovies(context.Background(), "Inception", 1); err != nil {
		t.Fatalf("post-expiry search failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 network calls after TTL expiry, got %d", calls)
	}
}

func TestSearchMoviesDistinctParamsMissCache(t *testing.T) {
	var calls int
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, searchBody), nil
		}),
	}

	client := New("test-key", httpc, 5*time.Minute)
	if _, err := client.SearchMovies(context.Background(), "Inception", 1); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if _, err := client.SearchMovies(context.Background(), "Inception", 2); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected separate cache entries per page, got %d calls", calls)
	}
}

func TestFetchPropagatesStatusError(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, `{"status_message":"not found"}`), nil
		}),
	}

	client := New("test-key", httpc, time.Minute)
	_, err := client.MovieDetails(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", statusErr.Code)
	}
}

func TestValidationFailureFailsCall(t *testing.T) {
	// Result row is missing its title: the whole call must fail, not return
	// partially-typed data.
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"page":1,"results":[{"id":1}]}`), nil
		}),
	}

	client := New("test-key", httpc, time.Minute)
	if _, err := client.SearchMovies(context.Background(), "broken", 1); err == nil {
		t.Fatal("expected validation error for malformed result")
	}
}

func TestValidationFailureIsNotCached(t *testing.T) {
	var calls int
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `{"page":1,"results":[{"id":1}]}`), nil
		}),
	}

	client := New("test-key", httpc, time.Minute)
	for i := 0; i < 2; i++ {
		if _, err := client.SearchMovies(context.Background(), "broken", 1); err == nil {
			t.Fatal("expected validation error")
		}
	}
	if calls != 2 {
		t.Fatalf("expected failed responses to bypass the cache, got %d calls", calls)
	}
}

func TestNotConfigured(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			t.Fatal("no network call expected without an api key")
			return nil, nil
		}),
	}

	client := New("", httpc, time.Minute)
	if client.IsConfigured() {
		t.Fatal("expected client to report unconfigured")
	}
	if _, err := client.SearchMovies(context.Background(), "anything", 1); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestMovieDetailsDecodesAndCaches(t *testing.T) {
	var calls int
	body := `{"id":27205,"title":"Inception","overview":"A thief...","release_date":"2010-07-15","poster_path":"/p.jpg","backdrop_path":"/b.jpg","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],"runtime":148,"tagline":"Your mind is the scene of the crime."}`
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			if req.URL.Path != "/3/movie/27205" {
				t.Fatalf("unexpected path %s", req.URL.Path)
			}
			return jsonResponse(http.StatusOK, body), nil
		}),
	}

	client := New("test-key", httpc, time.Minute)
	details, err := client.MovieDetails(context.Background(), 27205)
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if details.Title != "Inception" {
		t.Fatalf("unexpected title %q", details.Title)
	}
	if len(details.Genres) != 2 || details.Genres[0].Name != "Action" {
		t.Fatalf("unexpected genres %+v", details.Genres)
	}
	if details.Runtime == nil || *details.Runtime != 148 {
		t.Fatalf("unexpected runtime %v", details.Runtime)
	}
	if details.Year() != 2010 {
		t.Fatalf("unexpected year %d", details.Year())
	}

	if _, err := client.MovieDetails(context.Background(), 27205); err != nil {
		t.Fatalf("cached details failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected details to be cached, got %d calls", calls)
	}
}

func TestMovieCreditsDirector(t *testing.T) {
	body := `{"cast":[{"id":1,"name":"Leonardo DiCaprio","character":"Cobb","profile_path":null,"order":0}],"crew":[{"id":2,"name":"Emma Thomas","job":"Producer","department":"Production","profile_path":null},{"id":3,"name":"Christopher Nolan","job":"Director","department":"Directing","profile_path":null},{"id":4,"name":"Somebody Else","job":"Director","department":"Directing","profile_path":null}]}`
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		}),
	}

	client := New("test-key", httpc, time.Minute)
	credits, err := client.MovieCredits(context.Background(), 27205)
	if err != nil {
		t.Fatalf("credits failed: %v", err)
	}
	director := credits.Director()
	if director == nil {
		t.Fatal("expected a director")
	}
	// First matching crew entry wins, even for co-directed films.
	if director.Name != "Christopher Nolan" {
		t.Fatalf("expected first listed director, got %q", director.Name)
	}
}

func TestTrendingWindowFallback(t *testing.T) {
	var path string
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			path = req.URL.Path
			return jsonResponse(http.StatusOK, `{"page":1,"results":[]}`), nil
		}),
	}

	client := New("test-key", httpc, time.Minute)
	if _, err := client.TrendingMovies(context.Background(), "month", 1); err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if path != "/3/trending/movie/week" {
		t.Fatalf("expected fallback to week window, got %s", path)
	}
	if _, err := client.TrendingMovies(context.Background(), "day", 1); err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if path != "/3/trending/movie/day" {
		t.Fatalf("expected day window, got %s", path)
	}
}
