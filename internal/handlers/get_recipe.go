package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=get_recipe.go -destination=mock_get_recipe.go -package=handlers

// RecipeGetter fetches a single recipe.
type RecipeGetter interface {
	Get(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error)
}

// NewGetRecipeHandler returns an HTTP handler for a single recipe.
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /recipes/{id} [get]
func NewGetRecipeHandler(svc RecipeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, ok := recipeIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgRecipeNotFound)
			return
		}

		recipe, err := svc.Get(r.Context(), recipeID)
		if err != nil {
			if errors.Is(err, services.ErrRecipeNotFound) {
				writeError(w, http.StatusNotFound, msgRecipeNotFound)
				return
			}
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}
