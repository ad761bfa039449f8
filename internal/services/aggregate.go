package services

import "github.com/sbilibin2017/recipe-share/internal/models"

// AverageRating returns the arithmetic mean of the scores and their count.
// The mean of an empty set is 0.
func AverageRating(ratings []models.RatingDB) (average float64, count int) {
	count = len(ratings)
	if count == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(count), count
}
