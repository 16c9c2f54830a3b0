package models

import "testing"

func TestUserDataValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *UserData)
		wantErr bool
	}{
		{
			name:   "empty blob",
			mutate: func(d *UserData) {},
		},
		{
			name: "valid entries",
			mutate: func(d *UserData) {
				d.Ratings["42"] = Rating{MovieID: 42, Rating: 5, Timestamp: 1}
				d.Watchlist["7"] = WatchlistItem{MovieID: 7, AddedAt: 1}
			},
		},
		{
			name:    "missing ratings map",
			mutate:  func(d *UserData) { d.Ratings = nil },
			wantErr: true,
		},
		{
			name:    "missing watchlist map",
			mutate:  func(d *UserData) { d.Watchlist = nil },
			wantErr: true,
		},
		{
			name: "rating key mismatch",
			mutate: func(d *UserData) {
				d.Ratings["41"] = Rating{MovieID: 42, Rating: 5, Timestamp: 1}
			},
			wantErr: true,
		},
		{
			name: "non-canonical key",
			mutate: func(d *UserData) {
				d.Ratings["042"] = Rating{MovieID: 42, Rating: 5, Timestamp: 1}
			},
			wantErr: true,
		},
		{
			name: "rating out of range",
			mutate: func(d *UserData) {
				d.Ratings["1"] = Rating{MovieID: 1, Rating: 6, Timestamp: 1}
			},
			wantErr: true,
		},
		{
			name: "watchlist key mismatch",
			mutate: func(d *UserData) {
				d.Watchlist["8"] = WatchlistItem{MovieID: 7, AddedAt: 1}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewUserData()
			tt.mutate(&data)
			err := data.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
