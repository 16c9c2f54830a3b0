// Package prefs persists the user's ratings and watchlist as a single JSON
// blob. Every operation reads the full blob, mutates it, and writes it back
// atomically; a corrupt or missing blob degrades to an empty default.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"cinevision/models"
)

const userDataFile = "user_data.json"

// ErrInvalidImport is returned when an imported blob fails validation.
// Nothing is persisted in that case.
var ErrInvalidImport = errors.New("prefs: invalid user data")

// Service is the local preference store.
type Service struct {
	mu   sync.Mutex
	path string
	now  func() int64 // Unix milliseconds, override in tests
}

func NewService(dataDir string) (*Service, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("prefs: create data dir: %w", err)
	}
	return &Service{
		path: filepath.Join(dataDir, userDataFile),
		now:  func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// load reads the persisted blob. Missing or corrupt data falls back to an
// empty default so the store never fails a read.
func (s *Service) load() models.UserData {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[prefs] failed to read user data: %v", err)
		}
		return models.NewUserData()
	}

	var data models.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[prefs] failed to parse user data, starting fresh: %v", err)
		return models.NewUserData()
	}
	if err := data.Validate(); err != nil {
		log.Printf("[prefs] stored user data failed validation, starting fresh: %v", err)
		return models.NewUserData()
	}
	return data
}

// save writes the full blob via temp file + rename so a failed write never
// leaves a partial blob behind.
func (s *Service) save(data models.UserData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: marshal user data: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("prefs: write user data: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("prefs: replace user data: %w", err)
	}
	return nil
}

// Rating returns the stored star rating for a movie, if any.
func (s *Service) Rating(movieID int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	r, ok := data.Ratings[strconv.FormatInt(movieID, 10)]
	if !ok {
		return 0, false
	}
	return r.Rating, true
}

// SetRating stores a 1-5 star rating for a movie. Re-rating overwrites the
// previous entry with a fresh timestamp.
func (s *Service) SetRating(movieID int64, rating int) (models.Rating, error) {
	if rating < 1 || rating > 5 {
		return models.Rating{}, fmt.Errorf("prefs: rating %d out of range", rating)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	entry := models.Rating{MovieID: movieID, Rating: rating, Timestamp: s.now()}
	data.Ratings[strconv.FormatInt(movieID, 10)] = entry
	if err := s.save(data); err != nil {
		return models.Rating{}, err
	}
	return entry, nil
}

// RemoveRating deletes a movie's rating. Removing a nonexistent rating is a
// no-op.
func (s *Service) RemoveRating(movieID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	delete(data.Ratings, strconv.FormatInt(movieID, 10))
	return s.save(data)
}

// AllRatings returns every rating, newest first.
func (s *Service) AllRatings() []models.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	ratings := make([]models.Rating, 0, len(data.Ratings))
	for _, r := range data.Ratings {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].Timestamp != ratings[j].Timestamp {
			return ratings[i].Timestamp > ratings[j].Timestamp
		}
		return ratings[i].MovieID < ratings[j].MovieID
	})
	return ratings
}

// FavoriteMovies returns the ratings with value >= 4, newest first.
func (s *Service) FavoriteMovies() []models.Rating {
	all := s.AllRatings()
	favorites := make([]models.Rating, 0, len(all))
	for _, r := range all {
		if r.Rating >= 4 {
			favorites = append(favorites, r)
		}
	}
	return favorites
}

// InWatchlist reports watchlist membership for a movie.
func (s *Service) InWatchlist(movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	_, ok := data.Watchlist[strconv.FormatInt(movieID, 10)]
	return ok
}

// AddToWatchlist adds a movie to the watchlist. Re-adding refreshes AddedAt.
func (s *Service) AddToWatchlist(movieID int64) (models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	item := models.WatchlistItem{MovieID: movieID, AddedAt: s.now()}
	data.Watchlist[strconv.FormatInt(movieID, 10)] = item
	if err := s.save(data); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// RemoveFromWatchlist drops a movie from the watchlist; a no-op when absent.
func (s *Service) RemoveFromWatchlist(movieID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	delete(data.Watchlist, strconv.FormatInt(movieID, 10))
	return s.save(data)
}

// Watchlist returns every watchlist item, newest first.
func (s *Service) Watchlist() []models.WatchlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	items := make([]models.WatchlistItem, 0, len(data.Watchlist))
	for _, item := range data.Watchlist {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt != items[j].AddedAt {
			return items[i].AddedAt > items[j].AddedAt
		}
		return items[i].MovieID < items[j].MovieID
	})
	return items
}

// Export returns the full persisted blob.
func (s *Service) Export() models.UserData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Import validates the given blob and replaces the stored one atomically.
// Invalid input is rejected without any partial write.
func (s *Service) Import(data models.UserData) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(data)
}

// Clear removes all persisted preference data.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("prefs: clear user data: %w", err)
	}
	return nil
}
