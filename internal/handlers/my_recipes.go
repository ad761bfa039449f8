package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=my_recipes.go -destination=mock_my_recipes.go -package=handlers

// AuthorRecipeLister lists the recipes of one author.
type AuthorRecipeLister interface {
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error)
}

// NewMyRecipesHandler returns the caller's own recipes, newest first.
// @Summary My recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} models.Recipe
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /recipes/user/me [get]
// @Security Bearer
func NewMyRecipesHandler(svc AuthorRecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requesterID(w, r)
		if !ok {
			return
		}

		recipes, err := svc.ListByAuthor(r.Context(), userID)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, recipes)
	}
}
