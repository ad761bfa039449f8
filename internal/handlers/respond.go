package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/validation"
)

// Messages shared by several handlers.
const (
	msgInvalidBody    = "invalid request body"
	msgInternalError  = "Internal server error"
	msgUnauthorized   = "Unauthorized"
	msgRecipeNotFound = "Recipe not found"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}

	if err := validation.ValidateStruct(dst); err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return false
		}
		writeInternalError(w, r, err)
		return false
	}
	return true
}

// recipeIDParam parses the {id} URL parameter. A malformed id cannot name
// an existing recipe, so the caller answers 404.
func recipeIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requesterID returns the authenticated caller. It writes 401 and reports
// false when the route was mounted without the auth middleware.
func requesterID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := middlewares.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return uuid.Nil, false
	}
	return claims.UserID, true
}
