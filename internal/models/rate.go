package models

// RateRecipeRequest represents the JSON body for rating a recipe
// swagger:model RateRecipeRequest
type RateRecipeRequest struct {
	// Score from 1 to 5
	// required: true
	// example: 4
	Rating int `json:"rating" validate:"min=1,max=5"`

	// Optional review text
	// example: Great weeknight dinner
	Review *string `json:"review,omitempty" validate:"omitempty,max=2000"`
}
