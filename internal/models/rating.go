package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingDB represents a rating row joined with the rater's name.
type RatingDB struct {
	RatingID  uuid.UUID `db:"rating_id"`
	UserID    uuid.UUID `db:"user_id"`
	RecipeID  uuid.UUID `db:"recipe_id"`
	Rating    int       `db:"rating"`
	Review    *string   `db:"review"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"` // Drives the rating cooldown
	UserName  string    `db:"user_name"`
}

// OwnerID returns the rater.
func (r *RatingDB) OwnerID() uuid.UUID {
	return r.UserID
}

// Rating is the public view of a rating.
// swagger:model Rating
type Rating struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  uuid.UUID `json:"recipeId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Review    *string   `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      Rater     `json:"user"`
}

// View converts the row to its public form.
func (r *RatingDB) View() Rating {
	return Rating{
		ID:        r.RatingID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Review:    r.Review,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      Rater{ID: r.UserID, Name: r.UserName},
	}
}

// Rating event operations.
const (
	RatingCreated = "created"
	RatingUpdated = "updated"
)

// RatingEvent is published after every successful rating write.
type RatingEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Timestamp int64  `json:"timestamp"` // Unix seconds of the write
	RatingID  string `json:"rating_id"`
	RecipeID  string `json:"recipe_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Operation string `json:"operation"` // "created" or "updated"
}
