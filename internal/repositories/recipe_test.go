package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestRecipeRepositories(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	reader := NewRecipeReadRepository(db, nil)
	writer := NewRecipeWriteRepository(db, nil)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Now().UTC().Truncate(time.Microsecond)
	toast := models.RecipeDB{
		RecipeID:     uuid.New(),
		AuthorID:     alice.UserID,
		Title:        "Avocado Toast",
		Description:  strPtr("Simple breakfast with sourdough"),
		Ingredients:  models.StringList{"2 slices sourdough", "1 avocado"},
		Instructions: models.StringList{"Toast", "Spread"},
		PrepTime:     intPtr(5),
		Servings:     intPtr(1),
		Difficulty:   strPtr("Easy"),
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, writer.Create(ctx, &toast))
	pasta := seedRecipe(t, db, bob, "Pasta Primavera", base.Add(time.Minute))

	t.Run("GetByID", func(t *testing.T) {
		got, err := reader.GetByID(ctx, toast.RecipeID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Avocado Toast", got.Title)
		assert.Equal(t, models.StringList{"2 slices sourdough", "1 avocado"}, got.Ingredients)
		assert.Equal(t, 5, *got.PrepTime)
		assert.Nil(t, got.CookTime)
		assert.Equal(t, "alice", got.AuthorName)
		assert.Equal(t, alice.Email, got.AuthorEmail)
	})

	t.Run("GetByID missing", func(t *testing.T) {
		got, err := reader.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("List newest first", func(t *testing.T) {
		got, err := reader.List(ctx, models.RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, pasta.RecipeID, got[0].RecipeID)
		assert.Equal(t, toast.RecipeID, got[1].RecipeID)
	})

	t.Run("List search is case-insensitive over title and description", func(t *testing.T) {
		got, err := reader.List(ctx, models.RecipeFilter{Search: strPtr("SOURDOUGH")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, toast.RecipeID, got[0].RecipeID)
	})

	t.Run("List by author and difficulty", func(t *testing.T) {
		got, err := reader.List(ctx, models.RecipeFilter{AuthorID: &bob.UserID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, pasta.RecipeID, got[0].RecipeID)

		got, err = reader.List(ctx, models.RecipeFilter{Difficulty: strPtr("easy")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, toast.RecipeID, got[0].RecipeID)
	})

	t.Run("Update only touches given fields", func(t *testing.T) {
		steps := models.StringList{"Toast well", "Spread", "Season"}
		err := writer.Update(ctx, toast.RecipeID, models.RecipeUpdate{
			Title:        strPtr("Better Avocado Toast"),
			Instructions: &steps,
		}, base.Add(time.Hour))
		require.NoError(t, err)

		got, err := reader.GetByID(ctx, toast.RecipeID)
		require.NoError(t, err)
		assert.Equal(t, "Better Avocado Toast", got.Title)
		assert.Equal(t, steps, got.Instructions)
		assert.Equal(t, models.StringList{"2 slices sourdough", "1 avocado"}, got.Ingredients)
		assert.Equal(t, "Easy", *got.Difficulty)
		assert.Equal(t, alice.UserID, got.AuthorID)
		assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
	})

	t.Run("Update clears fields sent as null", func(t *testing.T) {
		err := writer.Update(ctx, toast.RecipeID, models.RecipeUpdate{
			Servings: intPtr(2),
			Clear:    []models.RecipeField{models.FieldDescription, models.FieldPrepTime},
		}, base.Add(2*time.Hour))
		require.NoError(t, err)

		got, err := reader.GetByID(ctx, toast.RecipeID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.PrepTime)
		require.NotNil(t, got.Servings)
		assert.Equal(t, 2, *got.Servings)
		assert.Equal(t, "Easy", *got.Difficulty)
		assert.Equal(t, "Better Avocado Toast", got.Title)
	})

	t.Run("Delete cascades ratings", func(t *testing.T) {
		ratings := NewRatingWriteRepository(db, nil)
		_, err := ratings.Upsert(ctx, alice.UserID, pasta.RecipeID, 4, nil, base, base)
		require.NoError(t, err)

		require.NoError(t, writer.Delete(ctx, pasta.RecipeID))

		got, err := reader.GetByID(ctx, pasta.RecipeID)
		assert.NoError(t, err)
		assert.Nil(t, got)

		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM ratings WHERE recipe_id=$1", pasta.RecipeID))
		assert.Equal(t, 0, n)
	})
}
