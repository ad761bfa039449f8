package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=update_recipe.go -destination=mock_update_recipe.go -package=handlers

// RecipeUpdater applies partial updates on behalf of a requester.
type RecipeUpdater interface {
	Update(ctx context.Context, requesterID, recipeID uuid.UUID, upd models.RecipeUpdate) (*models.Recipe, error)
}

// NewUpdateRecipeHandler returns an HTTP handler for partial recipe updates.
// Only the author may update a recipe.
// @Summary Update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param updateRecipeRequest body models.UpdateRecipeRequest true "Fields to change"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "You can only update your own recipes"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Router /recipes/{id} [patch]
// @Security Bearer
func NewUpdateRecipeHandler(svc RecipeUpdater) http.HandlerFunc {
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

		var req models.UpdateRecipeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		recipe, err := svc.Update(r.Context(), userID, recipeID, req.RecipeUpdate())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, msgRecipeNotFound)
			case errors.Is(err, services.ErrNotOwner):
				writeError(w, http.StatusForbidden, "You can only update your own recipes")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}
