package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

func TestRatingService_Rate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecipes := services.NewMockRecipeReader(ctrl)
	mockReader := services.NewMockRatingReader(ctrl)
	mockWriter := services.NewMockRatingWriter(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewRatingService(mockRecipes, mockReader, mockWriter, mockKafka,
		services.WithClock(func() time.Time { return now }))

	userID := uuid.New()
	recipeID := uuid.New()
	recipe := &models.RecipeDB{RecipeID: recipeID, AuthorID: uuid.New()}
	review := "tasty"

	saved := func(score int, created time.Time) *models.RatingDB {
		return &models.RatingDB{
			RatingID:  uuid.New(),
			UserID:    userID,
			RecipeID:  recipeID,
			Rating:    score,
			Review:    &review,
			CreatedAt: created,
			UpdatedAt: now,
			UserName:  "Alice",
		}
	}

	tests := []struct {
		name        string
		setup       func()
		score       int
		wantCreated bool
		wantErr     error
		wantWait    int
	}{
		{
			name:  "first rating is created",
			score: 4,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil)
				mockWriter.EXPECT().
					Upsert(gomock.Any(), userID, recipeID, 4, &review, now, now.Add(-services.RatingCooldown)).
					Return(saved(4, now), nil)
				mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCreated: true,
		},
		{
			name:  "update after cooldown",
			score: 5,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).
					Return(&models.RatingDB{UserID: userID, RecipeID: recipeID, Rating: 3, UpdatedAt: now.Add(-time.Minute)}, nil)
				mockWriter.EXPECT().
					Upsert(gomock.Any(), userID, recipeID, 5, &review, now, gomock.Any()).
					Return(saved(5, now.Add(-time.Hour)), nil)
				mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCreated: false,
		},
		{
			name:  "recipe not found",
			score: 4,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(nil, nil)
			},
			wantErr: services.ErrRecipeNotFound,
		},
		{
			name:  "recipe lookup error",
			score: 4,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
		{
			name:  "cooldown active",
			score: 2,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).
					Return(&models.RatingDB{UserID: userID, RecipeID: recipeID, Rating: 3, UpdatedAt: now.Add(-5 * time.Second)}, nil)
			},
			wantWait: 25,
		},
		{
			name:  "concurrent write wins the race",
			score: 2,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				gomock.InOrder(
					mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil),
					mockWriter.EXPECT().
						Upsert(gomock.Any(), userID, recipeID, 2, &review, now, gomock.Any()).
						Return(nil, nil),
					mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).
						Return(&models.RatingDB{UserID: userID, RecipeID: recipeID, Rating: 4, UpdatedAt: now}, nil),
				)
			},
			wantWait: 30,
		},
		{
			name:  "recipe deleted while the write was in flight",
			score: 2,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				gomock.InOrder(
					mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil),
					mockWriter.EXPECT().
						Upsert(gomock.Any(), userID, recipeID, 2, &review, now, gomock.Any()).
						Return(nil, nil),
					mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil),
				)
			},
			wantErr: services.ErrRecipeNotFound,
		},
		{
			name:  "writer error",
			score: 4,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil)
				mockWriter.EXPECT().
					Upsert(gomock.Any(), userID, recipeID, 4, &review, now, gomock.Any()).
					Return(nil, errors.New("constraint"))
			},
			wantErr: errors.New("constraint"),
		},
		{
			name:  "kafka failure does not fail the rating",
			score: 4,
			setup: func() {
				mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(recipe, nil)
				mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil)
				mockWriter.EXPECT().
					Upsert(gomock.Any(), userID, recipeID, 4, &review, now, gomock.Any()).
					Return(saved(4, now), nil)
				mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))
			},
			wantCreated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rating, created, err := svc.Rate(context.Background(), userID, recipeID, tt.score, &review)

			switch {
			case tt.wantWait > 0:
				var cooldownErr *services.CooldownError
				require.ErrorAs(t, err, &cooldownErr)
				assert.Equal(t, tt.wantWait, cooldownErr.RemainingSeconds)
				assert.Nil(t, rating)
			case tt.wantErr != nil:
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, rating)
			default:
				require.NoError(t, err)
				require.NotNil(t, rating)
				assert.Equal(t, tt.wantCreated, created)
				assert.Equal(t, tt.score, rating.Rating)
				assert.Equal(t, userID, rating.User.ID)
				assert.Equal(t, "Alice", rating.User.Name)
			}
		})
	}
}

func TestRatingService_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecipes := services.NewMockRecipeReader(ctrl)
	mockReader := services.NewMockRatingReader(ctrl)
	mockWriter := services.NewMockRatingWriter(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewRatingService(mockRecipes, mockReader, mockWriter, mockKafka,
		services.WithClock(func() time.Time { return now }))

	userID := uuid.New()
	recipeID := uuid.New()
	ratingID := uuid.New()

	mockRecipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(&models.RecipeDB{RecipeID: recipeID}, nil)
	mockReader.EXPECT().Find(gomock.Any(), userID, recipeID).Return(nil, nil)
	mockWriter.EXPECT().Upsert(gomock.Any(), userID, recipeID, 3, nil, now, gomock.Any()).
		Return(&models.RatingDB{RatingID: ratingID, UserID: userID, RecipeID: recipeID, Rating: 3, CreatedAt: now, UpdatedAt: now}, nil)

	var published kafka.Message
	mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			published = msgs[0]
			return nil
		})

	_, _, err := svc.Rate(context.Background(), userID, recipeID, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, recipeID.String(), string(published.Key))

	var event models.RatingEvent
	require.NoError(t, json.Unmarshal(published.Value, &event))
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, ratingID.String(), event.RatingID)
	assert.Equal(t, recipeID.String(), event.RecipeID)
	assert.Equal(t, userID.String(), event.UserID)
	assert.Equal(t, 3, event.Rating)
	assert.Equal(t, models.RatingCreated, event.Operation)
	assert.Equal(t, now.Unix(), event.Timestamp)
}

func TestRatingService_WithoutKafka(t *testing.T) {
	store := newMemoryStore()
	recipeID := store.addRecipe(uuid.New())
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	svc := services.NewRatingService(store, store, store, nil,
		services.WithClock(func() time.Time { return now }))

	rating, created, err := svc.Rate(context.Background(), uuid.New(), recipeID, 5, nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 5, rating.Rating)
}

// memoryStore is an in-memory recipe and rating store with the same
// conditional upsert semantics as the PostgreSQL repository.
type memoryStore struct {
	mu      sync.Mutex
	recipes map[uuid.UUID]models.RecipeDB
	ratings map[[2]uuid.UUID]models.RatingDB
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		recipes: make(map[uuid.UUID]models.RecipeDB),
		ratings: make(map[[2]uuid.UUID]models.RatingDB),
	}
}

func (s *memoryStore) addRecipe(authorID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.recipes[id] = models.RecipeDB{RecipeID: id, AuthorID: authorID, Title: "Soup"}
	return id
}

func (s *memoryStore) GetByID(_ context.Context, recipeID uuid.UUID) (*models.RecipeDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[recipeID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memoryStore) List(_ context.Context, _ models.RecipeFilter) ([]models.RecipeDB, error) {
	return nil, nil
}

func (s *memoryStore) Find(_ context.Context, userID, recipeID uuid.UUID) (*models.RatingDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.ratings[[2]uuid.UUID{userID, recipeID}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memoryStore) Upsert(_ context.Context, userID, recipeID uuid.UUID, score int, review *string, at, staleBefore time.Time) (*models.RatingDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{userID, recipeID}
	r, ok := s.ratings[key]
	if !ok {
		r = models.RatingDB{RatingID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: at}
	} else if r.UpdatedAt.After(staleBefore) {
		return nil, nil
	}
	r.Rating = score
	r.Review = review
	r.UpdatedAt = at
	s.ratings[key] = r
	return &r, nil
}

func (s *memoryStore) ratingsOf(recipeID uuid.UUID) []models.RatingDB {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RatingDB
	for _, r := range s.ratings {
		if r.RecipeID == recipeID {
			out = append(out, r)
		}
	}
	return out
}

func TestRatingService_TwoRatersScenario(t *testing.T) {
	store := newMemoryStore()
	recipeID := store.addRecipe(uuid.New())
	alice := uuid.New()
	bob := uuid.New()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start
	svc := services.NewRatingService(store, store, store, nil,
		services.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, created, err := svc.Rate(ctx, alice, recipeID, 4, nil)
	require.NoError(t, err)
	assert.True(t, created)
	avg, count := services.AverageRating(store.ratingsOf(recipeID))
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, count)

	_, created, err = svc.Rate(ctx, bob, recipeID, 2, nil)
	require.NoError(t, err)
	assert.True(t, created)
	avg, count = services.AverageRating(store.ratingsOf(recipeID))
	assert.Equal(t, 3.0, avg)
	assert.Equal(t, 2, count)

	now = start.Add(5 * time.Second)
	_, _, err = svc.Rate(ctx, alice, recipeID, 5, nil)
	assert.EqualError(t, err, "Please wait 25s before updating your rating again")
	avg, _ = services.AverageRating(store.ratingsOf(recipeID))
	assert.Equal(t, 3.0, avg)

	now = start.Add(31 * time.Second)
	rating, created, err := svc.Rate(ctx, alice, recipeID, 5, nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, start, rating.CreatedAt)
	avg, count = services.AverageRating(store.ratingsOf(recipeID))
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, 2, count)
}

func TestRatingService_ResubmitKeepsOneRow(t *testing.T) {
	store := newMemoryStore()
	recipeID := store.addRecipe(uuid.New())
	userID := uuid.New()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewRatingService(store, store, store, nil,
		services.WithClock(func() time.Time { return now }))

	for i := 0; i < 3; i++ {
		_, created, err := svc.Rate(context.Background(), userID, recipeID, 4, nil)
		require.NoError(t, err)
		assert.Equal(t, i == 0, created)
		now = now.Add(time.Minute)
	}

	ratings := store.ratingsOf(recipeID)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Rating)
}

func TestRatingService_ConcurrentSubmissions(t *testing.T) {
	store := newMemoryStore()
	recipeID := store.addRecipe(uuid.New())
	userID := uuid.New()

	svc := services.NewRatingService(store, store, store, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, _, err := svc.Rate(context.Background(), userID, recipeID, score, nil)
			errs <- err
		}(i%5 + 1)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var cooldownErr *services.CooldownError
		assert.ErrorAs(t, err, &cooldownErr)
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, store.ratingsOf(recipeID), 1)
}
