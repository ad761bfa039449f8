package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `db:"user_id"`       // Primary key
	Email        string    `db:"email"`         // Unique email, used as login
	Name         string    `db:"name"`          // Display name
	PasswordHash string    `db:"password_hash"` // bcrypt hash
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time `db:"updated_at"`    // Last update timestamp
}

// User is the public view of a user.
// swagger:model User
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Rater is the public identity attached to a rating.
// swagger:model Rater
type Rater struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Public strips credentials from the row.
func (u *UserDB) Public() User {
	return User{ID: u.UserID, Email: u.Email, Name: u.Name}
}
