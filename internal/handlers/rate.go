package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=rate.go -destination=mock_rate.go -package=handlers

// RecipeRater records a user's rating of a recipe.
type RecipeRater interface {
	Rate(ctx context.Context, userID, recipeID uuid.UUID, score int, review *string) (*models.Rating, bool, error)
}

// NewRateRecipeHandler returns an HTTP handler that creates or updates the caller's rating.
// @Summary Rate a recipe
// @Description The first rating of a recipe by a user is created; later ones overwrite it, at most once every 30 seconds.
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param rateRecipeRequest body models.RateRecipeRequest true "Rating"
// @Success 201 {object} models.Rating "Rating created"
// @Success 200 {object} models.Rating "Rating updated"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Please wait Ns before updating your rating again"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Router /recipes/{id}/rate [post]
// @Security Bearer
func NewRateRecipeHandler(svc RecipeRater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requesterID(w, r)
		if !ok {
			return
		}

		recipeID, ok := recipeIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgRecipeNotFound)
			return
		}

		var req models.RateRecipeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		rating, created, err := svc.Rate(r.Context(), userID, recipeID, req.Rating, req.Review)
		if err != nil {
			var cooldownErr *services.CooldownError
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, msgRecipeNotFound)
			case errors.As(err, &cooldownErr):
				writeError(w, http.StatusForbidden, cooldownErr.Error())
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, rating)
	}
}
