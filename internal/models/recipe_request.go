package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CreateRecipeRequest represents the JSON body for creating a recipe
// swagger:model CreateRecipeRequest
type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  *string  `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients" validate:"required,dive,required"`
	Instructions []string `json:"instructions" validate:"required,dive,required"`
	PrepTime     *int     `json:"prepTime,omitempty" validate:"omitempty,min=1"`
	CookTime     *int     `json:"cookTime,omitempty" validate:"omitempty,min=1"`
	Servings     *int     `json:"servings,omitempty" validate:"omitempty,min=1"`
	Difficulty   *string  `json:"difficulty,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`
}

// UpdateRecipeRequest represents the JSON body for a partial recipe update.
// Omitted fields are left unchanged. An explicit null clears an optional
// field; title, ingredients and instructions cannot be null.
// swagger:model UpdateRecipeRequest
type UpdateRecipeRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty" validate:"omitempty,dive,required"`
	Instructions []string `json:"instructions,omitempty" validate:"omitempty,dive,required"`
	PrepTime     *int     `json:"prepTime,omitempty" validate:"omitempty,min=1"`
	CookTime     *int     `json:"cookTime,omitempty" validate:"omitempty,min=1"`
	Servings     *int     `json:"servings,omitempty" validate:"omitempty,min=1"`
	Difficulty   *string  `json:"difficulty,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`

	cleared []RecipeField
}

// UnmarshalJSON decodes the body and records which optional fields were sent as null.
func (r *UpdateRecipeRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateRecipeRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range []string{"title", "ingredients", "instructions"} {
		if isJSONNull(raw, key) {
			return fmt.Errorf("%s cannot be null", key)
		}
	}

	*r = UpdateRecipeRequest(p)
	r.cleared = nil
	for _, f := range ClearableRecipeFields {
		if isJSONNull(raw, string(f)) {
			r.cleared = append(r.cleared, f)
		}
	}
	return nil
}

func isJSONNull(raw map[string]json.RawMessage, key string) bool {
	v, ok := raw[key]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// RecipeDB builds a new row from the request. Identity and timestamps are set by the caller.
func (r *CreateRecipeRequest) RecipeDB() RecipeDB {
	return RecipeDB{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  StringList(r.Ingredients),
		Instructions: StringList(r.Instructions),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		ImageURL:     r.ImageURL,
	}
}

// RecipeUpdate converts the request into a partial update.
func (r *UpdateRecipeRequest) RecipeUpdate() RecipeUpdate {
	upd := RecipeUpdate{
		Title:       r.Title,
		Description: r.Description,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		ImageURL:    r.ImageURL,
		Clear:       r.cleared,
	}
	if r.Ingredients != nil {
		l := StringList(r.Ingredients)
		upd.Ingredients = &l
	}
	if r.Instructions != nil {
		l := StringList(r.Instructions)
		upd.Instructions = &l
	}
	return upd
}
