package ai

import (
	"regexp"
	"strconv"
	"strings"

	"cinevision/models"
)

const maxRecommendations = 3

// The reply is expected to be a numbered list of "Title (Year)" lines, but
// models drift. Matching cascades: titled-with-year patterns first, then
// bare numbered titles, and the caller falls back to the keyword table when
// nothing matches at all.
var (
	numberedWithYear = regexp.MustCompile(`\d+\.\s*(.+?)\s*\((\d{4})\)`)
	lineWithYear     = regexp.MustCompile(`(?m)^(.+?)\s*\((\d{4})\)$`)
	numberedTitle    = regexp.MustCompile(`\d+\.\s*(.*?)(?:\n|$)`)
)

// parseRecommendations extracts at most 3 (title, year) pairs from the
// model's free-text reply. Returns an empty slice when nothing matched.
func parseRecommendations(content string) []models.AIRecommendation {
	var recs []models.AIRecommendation

	for _, pattern := range []*regexp.Regexp{numberedWithYear, lineWithYear} {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			year, _ := strconv.Atoi(match[2])
			recs = append(recs, models.AIRecommendation{
				Title: strings.TrimSpace(match[1]),
				Year:  year,
			})
		}
	}

	// No year anywhere: settle for titles from numbered lines.
	if len(recs) == 0 {
		for _, match := range numberedTitle.FindAllStringSubmatch(content, -1) {
			title := strings.TrimSpace(match[1])
			if title == "" {
				continue
			}
			recs = append(recs, models.AIRecommendation{Title: title})
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
