package ai

import (
	"strings"

	"cinevision/models"
)

// moodCategory maps request keywords to a fixed suggestion triple.
type moodCategory struct {
	keywords []string
	picks    []models.AIRecommendation
}

// Categories are checked in order; the first keyword hit wins.
var moodCategories = []moodCategory{
	{
		keywords: []string{"action", "exciting"},
		picks: []models.AIRecommendation{
			{Title: "Mad Max: Fury Road", Year: 2015},
			{Title: "John Wick", Year: 2014},
			{Title: "The Dark Knight", Year: 2008},
		},
	},
	{
		keywords: []string{"comedy", "funny", "laugh"},
		picks: []models.AIRecommendation{
			{Title: "The Grand Budapest Hotel", Year: 2014},
			{Title: "Superbad", Year: 2007},
			{Title: "The Hangover", Year: 2009},
		},
	},
	{
		keywords: []string{"romance", "love"},
		picks: []models.AIRecommendation{
			{Title: "La La Land", Year: 2016},
			{Title: "The Notebook", Year: 2004},
			{Title: "Eternal Sunshine of the Spotless Mind", Year: 2004},
		},
	},
	{
		keywords: []string{"scary", "horror"},
		picks: []models.AIRecommendation{
			{Title: "Get Out", Year: 2017},
			{Title: "Hereditary", Year: 2018},
			{Title: "The Conjuring", Year: 2013},
		},
	},
	{
		keywords: []string{"family", "kids"},
		picks: []models.AIRecommendation{
			{Title: "Coco", Year: 2017},
			{Title: "Inside Out", Year: 2015},
			{Title: "The Incredibles", Year: 2004},
		},
	},
}

var defaultPicks = []models.AIRecommendation{
	{Title: "Inception", Year: 2010},
	{Title: "Interstellar", Year: 2014},
	{Title: "The Shawshank Redemption", Year: 1994},
}

// fallbackRecommendations keyword-matches the request against the mood table.
// It is total: any input yields exactly three suggestions.
func fallbackRecommendations(input string) []models.AIRecommendation {
	lowered := strings.ToLower(input)
	for _, cat := range moodCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lowered, kw) {
				return append([]models.AIRecommendation(nil), cat.picks...)
			}
		}
	}
	return append([]models.AIRecommendation(nil), defaultPicks...)
}
