package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=profile.go -destination=mock_profile.go -package=handlers

// ProfileGetter returns the public user behind an id.
type ProfileGetter interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// NewProfileHandler returns the authenticated caller.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse "Missing, invalid or revoked token"
// @Router /auth/me [get]
// @Security Bearer
func NewProfileHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requesterID(w, r)
		if !ok {
			return
		}

		user, err := svc.Profile(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserDoesNotExist) {
				// the account was removed after the token was issued
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			writeInternalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
