package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email, used as login
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required,email"`

	// Display name
	// required: true
	// example: Alice Johnson
	Name string `json:"name" validate:"required,max=100"`

	// Password
	// required: true
	// example: password123
	Password string `json:"password" validate:"required,min=6,max=72"`
}
