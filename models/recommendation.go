package models

// AIRecommendation is a best-effort (title, year) pair extracted from the
// language model's free-text reply. Year 0 means the reply carried no year.
// Titles are not guaranteed to exist in the catalog.
type AIRecommendation struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}

// RecommendedMovie is a shortlist entry hydrated for display. Details and
// Credits are nil when their fetch failed; the movie itself is still shown.
type RecommendedMovie struct {
	Movie
	Details *MovieDetails `json:"details,omitempty"`
	Credits *Credits      `json:"credits,omitempty"`
}
