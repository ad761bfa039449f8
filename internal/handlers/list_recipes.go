package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=list_recipes.go -destination=mock_list_recipes.go -package=handlers

// RecipeLister lists the catalog.
type RecipeLister interface {
	List(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error)
}

// NewListRecipesHandler returns an HTTP handler that lists all recipes.
// @Summary List recipes
// @Description Every recipe with its ratings and average rating. Newest first unless sort says otherwise.
// @Tags recipes
// @Produce json
// @Param search query string false "Case-insensitive match on title or description"
// @Param difficulty query string false "Difficulty, case-insensitive"
// @Param minRating query number false "Minimum average rating"
// @Param sort query string false "newest, oldest or rating" Enums(newest, oldest, rating)
// @Success 200 {array} models.Recipe
// @Failure 400 {object} models.ErrorResponse "Invalid query parameter"
// @Failure 500 {object} models.ErrorResponse
// @Router /recipes [get]
func NewListRecipesHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, msg := parseRecipeFilter(r)
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		recipes, err := svc.List(r.Context(), filter)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, recipes)
	}
}

func parseRecipeFilter(r *http.Request) (models.RecipeFilter, string) {
	q := r.URL.Query()
	var filter models.RecipeFilter

	if s := strings.TrimSpace(q.Get("search")); s != "" {
		filter.Search = &s
	}
	if d := strings.TrimSpace(q.Get("difficulty")); d != "" {
		filter.Difficulty = &d
	}
	if raw := q.Get("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			return filter, "minRating must be a number between 0 and 5"
		}
		filter.MinRating = &v
	}

	switch sort := q.Get("sort"); sort {
	case "", models.SortNewest:
		filter.Sort = models.SortNewest
	case models.SortOldest, models.SortRating:
		filter.Sort = sort
	default:
		return filter, "sort must be one of newest, oldest, rating"
	}

	return filter, ""
}
