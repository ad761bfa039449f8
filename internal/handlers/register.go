package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, name string) (string, *models.User, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique email and signs the user in. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.AuthResponse "User registered and signed in"
// @Failure 400 {object} models.ErrorResponse "Email already exists / invalid request"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		token, user, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "Email already exists")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.AuthResponse{
			AccessToken: token,
			User:        *user,
		})
	}
}
