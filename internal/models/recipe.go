package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe sort orders accepted by RecipeFilter.Sort.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortRating = "rating"
)

// RecipeDB represents a recipe row joined with its author.
type RecipeDB struct {
	RecipeID     uuid.UUID  `db:"recipe_id"`
	AuthorID     uuid.UUID  `db:"author_id"`
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	Ingredients  StringList `db:"ingredients"`
	Instructions StringList `db:"instructions"`
	PrepTime     *int       `db:"prep_time"`
	CookTime     *int       `db:"cook_time"`
	Servings     *int       `db:"servings"`
	Difficulty   *string    `db:"difficulty"`
	ImageURL     *string    `db:"image_url"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`

	AuthorName  string `db:"author_name"`
	AuthorEmail string `db:"author_email"`
}

// OwnerID returns the author, the only identity allowed to mutate the recipe.
func (r *RecipeDB) OwnerID() uuid.UUID {
	return r.AuthorID
}

// RecipeField names an optional recipe column that an update can clear.
type RecipeField string

const (
	FieldDescription RecipeField = "description"
	FieldPrepTime    RecipeField = "prepTime"
	FieldCookTime    RecipeField = "cookTime"
	FieldServings    RecipeField = "servings"
	FieldDifficulty  RecipeField = "difficulty"
	FieldImageURL    RecipeField = "imageUrl"
)

// ClearableRecipeFields lists the columns that accept an explicit null.
var ClearableRecipeFields = []RecipeField{
	FieldDescription, FieldPrepTime, FieldCookTime, FieldServings, FieldDifficulty, FieldImageURL,
}

// RecipeUpdate is a partial update. Nil fields are left unchanged unless
// they are listed in Clear, which sets them to NULL.
type RecipeUpdate struct {
	Title        *string
	Description  *string
	Ingredients  *StringList
	Instructions *StringList
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
	ImageURL     *string
	Clear        []RecipeField
}

// Clears reports whether f is set to NULL by the update.
func (u RecipeUpdate) Clears(f RecipeField) bool {
	for _, c := range u.Clear {
		if c == f {
			return true
		}
	}
	return false
}

// RecipeFilter narrows a catalog listing. Nil fields do not filter.
type RecipeFilter struct {
	Search     *string
	AuthorID   *uuid.UUID
	Difficulty *string
	MinRating  *float64
	Sort       string
}

// RatingCount mirrors the `_count` object returned with every recipe.
type RatingCount struct {
	Ratings int `json:"ratings"`
}

// Recipe is the public view of a recipe with its ratings and derived score.
// swagger:model Recipe
type Recipe struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Description   *string     `json:"description,omitempty"`
	Ingredients   []string    `json:"ingredients"`
	Instructions  []string    `json:"instructions"`
	PrepTime      *int        `json:"prepTime,omitempty"`
	CookTime      *int        `json:"cookTime,omitempty"`
	Servings      *int        `json:"servings,omitempty"`
	Difficulty    *string     `json:"difficulty,omitempty"`
	ImageURL      *string     `json:"imageUrl,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	AuthorID      uuid.UUID   `json:"authorId"`
	Author        User        `json:"author"`
	Ratings       []Rating    `json:"ratings"`
	AverageRating float64     `json:"averageRating"`
	Count         RatingCount `json:"_count"`
}
