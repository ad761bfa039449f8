package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=delete_recipe.go -destination=mock_delete_recipe.go -package=handlers

// RecipeDeleter removes recipes on behalf of a requester.
type RecipeDeleter interface {
	Delete(ctx context.Context, requesterID, recipeID uuid.UUID) error
}

// DeleteRecipeResponse confirms a deletion
// swagger:model DeleteRecipeResponse
type DeleteRecipeResponse struct {
	// example: Recipe deleted successfully
	Message string `json:"message"`
}

// NewDeleteRecipeHandler returns an HTTP handler that deletes a recipe and its ratings.
// Only the author may delete a recipe.
// @Summary Delete a recipe
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} handlers.DeleteRecipeResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "You can only delete your own recipes"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Router /recipes/{id} [delete]
// @Security Bearer
func NewDeleteRecipeHandler(svc RecipeDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, recipeID); err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, msgRecipeNotFound)
			case errors.Is(err, services.ErrNotOwner):
				writeError(w, http.StatusForbidden, "You can only delete your own recipes")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, DeleteRecipeResponse{Message: "Recipe deleted successfully"})
	}
}
