package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// example: password123
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login
// swagger:model AuthResponse
type AuthResponse struct {
	// Signed JWT
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// Authenticated user
	User User `json:"user"`
}
