package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRepositories(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	reader := NewRatingReadRepository(db, nil)
	writer := NewRatingWriteRepository(db, nil)

	t0 := time.Now().UTC().Truncate(time.Microsecond)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	soup := seedRecipe(t, db, alice, "Soup", t0)
	stew := seedRecipe(t, db, alice, "Stew", t0)

	t.Run("Find missing", func(t *testing.T) {
		got, err := reader.Find(ctx, bob.UserID, soup.RecipeID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Upsert creates then overwrites in place", func(t *testing.T) {
		created, err := writer.Upsert(ctx, bob.UserID, soup.RecipeID, 2, strPtr("meh"), t0, t0.Add(-30*time.Second))
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 2, created.Rating)
		assert.Equal(t, "bob", created.UserName)
		assert.True(t, created.UpdatedAt.Equal(t0))

		t1 := t0.Add(31 * time.Second)
		updated, err := writer.Upsert(ctx, bob.UserID, soup.RecipeID, 5, nil, t1, t1.Add(-30*time.Second))
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, created.RatingID, updated.RatingID)
		assert.Equal(t, 5, updated.Rating)
		assert.Nil(t, updated.Review)
		assert.True(t, updated.CreatedAt.Equal(t0))
		assert.True(t, updated.UpdatedAt.Equal(t1))

		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM ratings WHERE user_id=$1 AND recipe_id=$2", bob.UserID, soup.RecipeID))
		assert.Equal(t, 1, n)
	})

	t.Run("Upsert inside the window is suppressed", func(t *testing.T) {
		existing, err := reader.Find(ctx, bob.UserID, soup.RecipeID)
		require.NoError(t, err)
		require.NotNil(t, existing)

		at := existing.UpdatedAt.Add(10 * time.Second)
		got, err := writer.Upsert(ctx, bob.UserID, soup.RecipeID, 1, nil, at, at.Add(-30*time.Second))
		assert.NoError(t, err)
		assert.Nil(t, got)

		after, err := reader.Find(ctx, bob.UserID, soup.RecipeID)
		require.NoError(t, err)
		assert.Equal(t, existing.Rating, after.Rating)
	})

	t.Run("Concurrent first ratings leave one row", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(score int) {
				defer wg.Done()
				_, err := writer.Upsert(ctx, alice.UserID, stew.RecipeID, score, nil, t0, t0.Add(-30*time.Second))
				errs <- err
			}(i%5 + 1)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM ratings WHERE user_id=$1 AND recipe_id=$2", alice.UserID, stew.RecipeID))
		assert.Equal(t, 1, n)
	})

	t.Run("ListByRecipeIDs groups by recipe", func(t *testing.T) {
		got, err := reader.ListByRecipeIDs(ctx, []uuid.UUID{soup.RecipeID, stew.RecipeID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, got[soup.RecipeID], 1)
		assert.Len(t, got[stew.RecipeID], 1)
		assert.Equal(t, "bob", got[soup.RecipeID][0].UserName)

		empty, err := reader.ListByRecipeIDs(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, empty)
	})
}
