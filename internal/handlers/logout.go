package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
)

//go:generate mockgen -source=logout.go -destination=mock_logout.go -package=handlers

// Logouter revokes a token.
type Logouter interface {
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// NewLogoutHandler revokes the bearer token used for the request.
// @Summary Log out
// @Description Revokes the current token until it expires
// @Tags auth
// @Success 204 "Token revoked"
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/logout [post]
// @Security Bearer
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		if err := svc.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
			writeInternalError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
