package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=create_recipe.go -destination=mock_create_recipe.go -package=handlers

// RecipeCreator stores new recipes.
type RecipeCreator interface {
	Create(ctx context.Context, authorID uuid.UUID, recipe models.RecipeDB) (*models.Recipe, error)
}

// NewCreateRecipeHandler returns an HTTP handler that publishes a recipe authored by the caller.
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param createRecipeRequest body models.CreateRecipeRequest true "Recipe"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /recipes [post]
// @Security Bearer
func NewCreateRecipeHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requesterID(w, r)
		if !ok {
			return
		}

		var req models.CreateRecipeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		recipe, err := svc.Create(r.Context(), userID, req.RecipeDB())
		if err != nil {
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, recipe)
	}
}
