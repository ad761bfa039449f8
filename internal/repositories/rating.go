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

// RatingReadRepository reads ratings joined with the rater's name.
type RatingReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRatingReadRepository(db *sqlx.DB, txGetter TxGetter) *RatingReadRepository {
	return &RatingReadRepository{db: db, txGetter: txGetter}
}

// Find returns the rating userID gave recipeID, or nil if there is none.
func (r *RatingReadRepository) Find(ctx context.Context, userID, recipeID uuid.UUID) (*models.RatingDB, error) {
	const query = `
		SELECT rt.rating_id, rt.user_id, rt.recipe_id, rt.rating, rt.review,
		       rt.created_at, rt.updated_at, u.name AS user_name
		FROM ratings rt
		JOIN users u ON u.user_id = rt.user_id
		WHERE rt.user_id = $1 AND rt.recipe_id = $2
	`

	var rating models.RatingDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &rating, query, userID, recipeID)

	logQuery(ctx, query, []any{userID, recipeID}, rating.RatingID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByRecipeIDs returns the ratings of each recipe, oldest first.
func (r *RatingReadRepository) ListByRecipeIDs(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]models.RatingDB, error) {
	result := make(map[uuid.UUID][]models.RatingDB, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT rt.rating_id, rt.user_id, rt.recipe_id, rt.rating, rt.review,
		       rt.created_at, rt.updated_at, u.name AS user_name
		FROM ratings rt
		JOIN users u ON u.user_id = rt.user_id
		WHERE rt.recipe_id IN (?)
		ORDER BY rt.created_at, rt.rating_id
	`, recipeIDs)
	if err != nil {
		return nil, err
	}

	ex := executor(ctx, r.db, r.txGetter)
	query = ex.Rebind(query)

	var ratings []models.RatingDB
	err = sqlx.SelectContext(ctx, ex, &ratings, query, args...)

	logQuery(ctx, query, args, len(ratings), err)

	if err != nil {
		return nil, err
	}
	for _, rt := range ratings {
		result[rt.RecipeID] = append(result[rt.RecipeID], rt)
	}
	return result, nil
}

// RatingWriteRepository writes ratings.
type RatingWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRatingWriteRepository(db *sqlx.DB, txGetter TxGetter) *RatingWriteRepository {
	return &RatingWriteRepository{db: db, txGetter: txGetter}
}

// Upsert creates or overwrites the (userID, recipeID) rating in one statement.
//
// An existing row is only overwritten when its updated_at is at or before
// staleBefore. When a concurrent write already refreshed the row, the update
// is suppressed and Upsert returns nil, nil. Two first-time writers never
// collide: the loser goes through the conflict clause instead of failing.
func (r *RatingWriteRepository) Upsert(
	ctx context.Context,
	userID, recipeID uuid.UUID,
	score int,
	review *string,
	at, staleBefore time.Time,
) (*models.RatingDB, error) {
	const query = `
		WITH upserted AS (
			INSERT INTO ratings (rating_id, user_id, recipe_id, rating, review, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (user_id, recipe_id) DO UPDATE
			SET rating = EXCLUDED.rating,
			    review = EXCLUDED.review,
			    updated_at = EXCLUDED.updated_at
			WHERE ratings.updated_at <= $7
			RETURNING rating_id, user_id, recipe_id, rating, review, created_at, updated_at
		)
		SELECT up.rating_id, up.user_id, up.recipe_id, up.rating, up.review,
		       up.created_at, up.updated_at, u.name AS user_name
		FROM upserted up
		JOIN users u ON u.user_id = up.user_id
	`
	args := []any{uuid.New(), userID, recipeID, score, review, at, staleBefore}

	var rating models.RatingDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &rating, query, args...)

	logQuery(ctx, query, args, rating.RatingID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
