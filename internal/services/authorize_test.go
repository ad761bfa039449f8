package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	recipe := &models.RecipeDB{RecipeID: uuid.New(), AuthorID: owner}

	tests := []struct {
		name      string
		requester uuid.UUID
		resource  services.Owned
		wantErr   error
	}{
		{name: "owner", requester: owner, resource: recipe},
		{name: "someone else", requester: uuid.New(), resource: recipe, wantErr: services.ErrNotOwner},
		{name: "anonymous", requester: uuid.Nil, resource: recipe, wantErr: services.ErrNotOwner},
		{name: "rating owner", requester: owner, resource: &models.RatingDB{UserID: owner}},
		{name: "unowned rating", requester: owner, resource: &models.RatingDB{UserID: uuid.New()}, wantErr: services.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.Authorize(tt.requester, tt.resource)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
