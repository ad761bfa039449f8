package models

// ErrorResponse is the body of every non-2xx response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// HTTP status text
	// example: Forbidden
	Error string `json:"error"`

	// Human-readable message
	// example: Please wait 25s before updating your rating again
	Message string `json:"message"`
}
