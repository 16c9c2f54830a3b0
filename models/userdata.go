package models

import (
	"fmt"
	"strconv"
)

// Rating is one star rating for a movie. Timestamp is Unix milliseconds;
// the store keeps at most one rating per movie and last write wins.
type Rating struct {
	MovieID   int64 `json:"movieId"`
	Rating    int   `json:"rating"`
	Timestamp int64 `json:"timestamp"`
}

// WatchlistItem records watchlist membership. Presence is the signal; AddedAt
// only orders the display.
type WatchlistItem struct {
	MovieID int64 `json:"movieId"`
	AddedAt int64 `json:"addedAt"`
}

// UserData is the full persisted preference blob. Map keys are the canonical
// decimal string form of the movie id.
type UserData struct {
	Ratings   map[string]Rating        `json:"ratings"`
	Watchlist map[string]WatchlistItem `json:"watchlist"`
}

// NewUserData returns an empty blob with both maps allocated.
func NewUserData() UserData {
	return UserData{
		Ratings:   make(map[string]Rating),
		Watchlist: make(map[string]WatchlistItem),
	}
}

// Validate checks the blob against the persisted-data contract: both maps
// present, every key the canonical string of its entry's movie id, and every
// rating within 1-5.
func (d UserData) Validate() error {
	if d.Ratings == nil {
		return fmt.Errorf("userdata: ratings map missing")
	}
	if d.Watchlist == nil {
		return fmt.Errorf("userdata: watchlist map missing")
	}
	for key, r := range d.Ratings {
		if key != strconv.FormatInt(r.MovieID, 10) {
			return fmt.Errorf("userdata: rating key %q does not match movie id %d", key, r.MovieID)
		}
		if r.Rating < 1 || r.Rating > 5 {
			return fmt.Errorf("userdata: rating %d for movie %d out of range", r.Rating, r.MovieID)
		}
	}
	for key, item := range d.Watchlist {
		if key != strconv.FormatInt(item.MovieID, 10) {
			return fmt.Errorf("userdata: watchlist key %q does not match movie id %d", key, item.MovieID)
		}
	}
	return nil
}
