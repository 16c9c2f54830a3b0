package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinevision/models"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// defaultCacheTTL is how long a decoded response stays valid.
const defaultCacheTTL = 5 * time.Minute

// ErrNotConfigured is returned by every operation when no API key is set.
// Callers degrade to empty results instead of surfacing it to the user.
var ErrNotConfigured = errors.New("catalog: api key not configured")

// StatusError reports a non-success HTTP status from the catalog API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: api error: status %d", e.Code)
}

// Client is a typed wrapper over the TMDB movie API. Responses are strictly
// decoded and cached in memory for the TTL; a cache hit makes no network call.
type Client struct {
	apiKey string
	httpc  *http.Client
	cache  *memCache
}

// New builds a catalog client. A nil httpc falls back to a default client
// with a timeout; ttl <= 0 uses the 5-minute default.
func New(apiKey string, httpc *http.Client, ttl time.Duration) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		httpc:  httpc,
		cache:  newMemCache(ttl),
	}
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// ClearCache drops all cached responses.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// fetch returns the raw body for endpoint+params, going to the network only
// on a cache miss. The decoded value is what gets cached, so fetch is only
// called when decode will run; see the typed methods below.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(tmdbBaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("catalog: build url: %w", err)
	}
	query := u.Query()
	query.Set("api_key", c.apiKey)
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read response: %w", err)
	}
	return body, nil
}

// SearchMovies queries the catalog. Adult titles are always excluded.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (models.MoviePage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	return c.fetchPage(ctx, "/search/movie", params)
}

// MovieDetails fetches the detail record for one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (models.MovieDetails, error) {
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	key := cacheKey(endpoint, nil)
	if v, ok := c.cache.get(key); ok {
		return v.(models.MovieDetails), nil
	}
	body, err := c.fetch(ctx, endpoint, nil)
	if err != nil {
		return models.MovieDetails{}, err
	}
	details, err := decodeDetails(body)
	if err != nil {
		return models.MovieDetails{}, fmt.Errorf("catalog: %w", err)
	}
	c.cache.set(key, details)
	return details, nil
}

// MovieCredits fetches the cast and crew for one movie.
func (c *Client) MovieCredits(ctx context.Context, movieID int64) (models.Credits, error) {
	endpoint := fmt.Sprintf("/movie/%d/credits", movieID)
	key := cacheKey(endpoint, nil)
	if v, ok := c.cache.get(key); ok {
		return v.(models.Credits), nil
	}
	body, err := c.fetch(ctx, endpoint, nil)
	if err != nil {
		return models.Credits{}, err
	}
	credits, err := decodeCredits(body)
	if err != nil {
		return models.Credits{}, fmt.Errorf("catalog: %w", err)
	}
	c.cache.set(key, credits)
	return credits, nil
}

// TrendingMovies fetches the trending list for the given window ("day" or
// "week"). Anything else falls back to "week".
func (c *Client) TrendingMovies(ctx context.Context, window string, page int) (models.MoviePage, error) {
	if window != "day" {
		window = "week"
	}
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.fetchPage(ctx, "/trending/movie/"+window, params)
}

// MovieRecommendations fetches the catalog's recommendation list for a movie.
func (c *Client) MovieRecommendations(ctx context.Context, movieID int64, page int) (models.MoviePage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.fetchPage(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), params)
}

// SimilarMovies fetches the catalog's similar-titles list for a movie.
func (c *Client) SimilarMovies(ctx context.Context, movieID int64, page int) (models.MoviePage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.fetchPage(ctx, fmt.Sprintf("/movie/%d/similar", movieID), params)
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, params url.Values) (models.MoviePage, error) {
	key := cacheKey(endpoint, params)
	if v, ok := c.cache.get(key); ok {
		return v.(models.MoviePage), nil
	}
	body, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		return models.MoviePage{}, err
	}
	page, err := decodePage(body)
	if err != nil {
		return models.MoviePage{}, fmt.Errorf("catalog: %w", err)
	}
	c.cache.set(key, page)
	return page, nil
}
