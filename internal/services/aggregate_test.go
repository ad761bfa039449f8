package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

func scores(values ...int) []models.RatingDB {
	ratings := make([]models.RatingDB, len(values))
	for i, v := range values {
		ratings[i] = models.RatingDB{Rating: v}
	}
	return ratings
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []models.RatingDB
		wantAvg   float64
		wantCount int
	}{
		{name: "no ratings", ratings: nil, wantAvg: 0, wantCount: 0},
		{name: "single rating", ratings: scores(4), wantAvg: 4, wantCount: 1},
		{name: "two ratings", ratings: scores(4, 2), wantAvg: 3, wantCount: 2},
		{name: "non integer mean", ratings: scores(5, 2), wantAvg: 3.5, wantCount: 2},
		{name: "all extremes", ratings: scores(1, 5, 1, 5), wantAvg: 3, wantCount: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := services.AverageRating(tt.ratings)
			assert.InDelta(t, tt.wantAvg, avg, 1e-9)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestAverageRating_OrderIndependent(t *testing.T) {
	a, _ := services.AverageRating(scores(1, 2, 3, 5, 5))
	b, _ := services.AverageRating(scores(5, 3, 5, 1, 2))
	assert.Equal(t, a, b)
}
