package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

const recipeColumns = `
	r.recipe_id, r.author_id, r.title, r.description, r.ingredients, r.instructions,
	r.prep_time, r.cook_time, r.servings, r.difficulty, r.image_url,
	r.created_at, r.updated_at,
	u.name AS author_name, u.email AS author_email
`

// RecipeReadRepository reads recipes joined with their author.
type RecipeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeReadRepository(db *sqlx.DB, txGetter TxGetter) *RecipeReadRepository {
	return &RecipeReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the recipe, or nil if it does not exist.
func (r *RecipeReadRepository) GetByID(ctx context.Context, recipeID uuid.UUID) (*models.RecipeDB, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.user_id = r.author_id
		WHERE r.recipe_id = $1
	`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, recipeID)

	logQuery(ctx, query, []any{recipeID}, recipe.RecipeID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns recipes matching filter, newest first. Search is a
// case-insensitive substring match on title and description.
func (r *RecipeReadRepository) List(ctx context.Context, filter models.RecipeFilter) ([]models.RecipeDB, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.user_id = r.author_id
		WHERE ($1::TEXT IS NULL
		       OR r.title ILIKE '%' || $1::TEXT || '%'
		       OR r.description ILIKE '%' || $1::TEXT || '%')
		  AND ($2::UUID IS NULL OR r.author_id = $2::UUID)
		  AND ($3::TEXT IS NULL OR LOWER(r.difficulty) = LOWER($3::TEXT))
		ORDER BY r.created_at DESC, r.recipe_id
	`
	args := []any{filter.Search, filter.AuthorID, filter.Difficulty}

	recipes := []models.RecipeDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &recipes, query, args...)

	logQuery(ctx, query, args, len(recipes), err)

	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipeWriteRepository writes recipes.
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeWriteRepository(db *sqlx.DB, txGetter TxGetter) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts recipe. ID, author and timestamps must already be set.
func (r *RecipeWriteRepository) Create(ctx context.Context, recipe *models.RecipeDB) error {
	const query = `
		INSERT INTO recipes (
			recipe_id, author_id, title, description, ingredients, instructions,
			prep_time, cook_time, servings, difficulty, image_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	args := []any{
		recipe.RecipeID, recipe.AuthorID, recipe.Title, recipe.Description,
		recipe.Ingredients, recipe.Instructions,
		recipe.PrepTime, recipe.CookTime, recipe.Servings, recipe.Difficulty, recipe.ImageURL,
		recipe.CreatedAt, recipe.UpdatedAt,
	}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)

	logQuery(ctx, query, args, rowsAffected(res), err)

	return err
}

// Update applies the non-nil fields of upd and nulls the ones it clears.
// The author is never changed.
func (r *RecipeWriteRepository) Update(ctx context.Context, recipeID uuid.UUID, upd models.RecipeUpdate, updatedAt time.Time) error {
	const query = `
		UPDATE recipes SET
			title        = COALESCE($2, title),
			description  = CASE WHEN $12::BOOLEAN THEN NULL ELSE COALESCE($3, description) END,
			ingredients  = COALESCE($4::JSONB, ingredients),
			instructions = COALESCE($5::JSONB, instructions),
			prep_time    = CASE WHEN $13::BOOLEAN THEN NULL ELSE COALESCE($6, prep_time) END,
			cook_time    = CASE WHEN $14::BOOLEAN THEN NULL ELSE COALESCE($7, cook_time) END,
			servings     = CASE WHEN $15::BOOLEAN THEN NULL ELSE COALESCE($8, servings) END,
			difficulty   = CASE WHEN $16::BOOLEAN THEN NULL ELSE COALESCE($9, difficulty) END,
			image_url    = CASE WHEN $17::BOOLEAN THEN NULL ELSE COALESCE($10, image_url) END,
			updated_at   = $11
		WHERE recipe_id = $1
	`
	args := []any{
		recipeID, upd.Title, upd.Description, upd.Ingredients, upd.Instructions,
		upd.PrepTime, upd.CookTime, upd.Servings, upd.Difficulty, upd.ImageURL,
		updatedAt,
		upd.Clears(models.FieldDescription), upd.Clears(models.FieldPrepTime),
		upd.Clears(models.FieldCookTime), upd.Clears(models.FieldServings),
		upd.Clears(models.FieldDifficulty), upd.Clears(models.FieldImageURL),
	}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)

	logQuery(ctx, query, args, rowsAffected(res), err)

	return err
}

// Delete removes the recipe. Its ratings go with it through ON DELETE CASCADE.
func (r *RecipeWriteRepository) Delete(ctx context.Context, recipeID uuid.UUID) error {
	const query = `DELETE FROM recipes WHERE recipe_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, recipeID)

	logQuery(ctx, query, []any{recipeID}, rowsAffected(res), err)

	return err
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
