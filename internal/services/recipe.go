package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=recipe.go -destination=mock_recipe.go -package=services

// RecipeReader reads recipes.
type RecipeReader interface {
	GetByID(ctx context.Context, recipeID uuid.UUID) (*models.RecipeDB, error) // nil when absent
	List(ctx context.Context, filter models.RecipeFilter) ([]models.RecipeDB, error)
}

// RecipeWriter writes recipes.
type RecipeWriter interface {
	Create(ctx context.Context, recipe *models.RecipeDB) error
	Update(ctx context.Context, recipeID uuid.UUID, upd models.RecipeUpdate, updatedAt time.Time) error
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

// RatingLister loads the ratings of several recipes at once.
type RatingLister interface {
	ListByRecipeIDs(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]models.RatingDB, error)
}

// RecipeService handles the recipe catalog. Every recipe it returns carries
// an average rating computed from the ratings loaded in the same call.
type RecipeService struct {
	reader  RecipeReader
	writer  RecipeWriter
	ratings RatingLister
	now     func() time.Time
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(reader RecipeReader, writer RecipeWriter, ratings RatingLister) *RecipeService {
	return &RecipeService{
		reader:  reader,
		writer:  writer,
		ratings: ratings,
		now:     time.Now,
	}
}

// Create stores a new recipe owned by authorID.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, recipe models.RecipeDB) (*models.Recipe, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC().Truncate(time.Microsecond)

	recipe.RecipeID = uuid.New()
	recipe.AuthorID = authorID
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	if recipe.Ingredients == nil {
		recipe.Ingredients = models.StringList{}
	}
	if recipe.Instructions == nil {
		recipe.Instructions = models.StringList{}
	}

	if err := s.writer.Create(ctx, &recipe); err != nil {
		log.Errorw("failed to create recipe", "authorID", authorID, "error", err)
		return nil, err
	}

	return s.Get(ctx, recipe.RecipeID)
}

// Get returns one recipe or ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	row, err := s.reader.GetByID(ctx, recipeID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get recipe", "recipeID", recipeID, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrRecipeNotFound
	}

	views, err := s.withRatings(ctx, []models.RecipeDB{*row})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns the catalog narrowed by filter. MinRating and the "rating"
// sort order apply to the derived average.
func (s *RecipeService) List(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	rows, err := s.reader.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list recipes", "error", err)
		return nil, err
	}

	views, err := s.withRatings(ctx, rows)
	if err != nil {
		return nil, err
	}

	if filter.MinRating != nil {
		kept := views[:0]
		for _, v := range views {
			if v.AverageRating >= *filter.MinRating {
				kept = append(kept, v)
			}
		}
		views = kept
	}

	switch filter.Sort {
	case models.SortRating:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].AverageRating > views[j].AverageRating
		})
	case models.SortOldest:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		})
	}

	return views, nil
}

// ListByAuthor returns authorID's recipes, newest first.
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error) {
	return s.List(ctx, models.RecipeFilter{AuthorID: &authorID})
}

// Update applies upd when requesterID authored the recipe.
func (s *RecipeService) Update(ctx context.Context, requesterID, recipeID uuid.UUID, upd models.RecipeUpdate) (*models.Recipe, error) {
	if err := s.authorize(ctx, requesterID, recipeID); err != nil {
		return nil, err
	}

	if err := s.writer.Update(ctx, recipeID, upd, s.now().UTC().Truncate(time.Microsecond)); err != nil {
		logger.FromContext(ctx).Errorw("failed to update recipe", "recipeID", recipeID, "error", err)
		return nil, err
	}

	return s.Get(ctx, recipeID)
}

// Delete removes the recipe when requesterID authored it.
func (s *RecipeService) Delete(ctx context.Context, requesterID, recipeID uuid.UUID) error {
	if err := s.authorize(ctx, requesterID, recipeID); err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, recipeID); err != nil {
		logger.FromContext(ctx).Errorw("failed to delete recipe", "recipeID", recipeID, "error", err)
		return err
	}
	return nil
}

func (s *RecipeService) authorize(ctx context.Context, requesterID, recipeID uuid.UUID) error {
	log := logger.FromContext(ctx)

	recipe, err := s.reader.GetByID(ctx, recipeID)
	if err != nil {
		log.Errorw("failed to get recipe", "recipeID", recipeID, "error", err)
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	if err := Authorize(requesterID, recipe); err != nil {
		log.Warnw("recipe mutation denied", "recipeID", recipeID, "requesterID", requesterID, "authorID", recipe.AuthorID)
		return err
	}
	return nil
}

func (s *RecipeService) withRatings(ctx context.Context, rows []models.RecipeDB) ([]models.Recipe, error) {
	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.RecipeID
	}

	ratings, err := s.ratings.ListByRecipeIDs(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to load ratings", "recipes", len(ids), "error", err)
		return nil, err
	}

	views := make([]models.Recipe, len(rows))
	for i := range rows {
		views[i] = recipeView(&rows[i], ratings[rows[i].RecipeID])
	}
	return views, nil
}

func recipeView(r *models.RecipeDB, ratings []models.RatingDB) models.Recipe {
	average, count := AverageRating(ratings)

	ratingViews := make([]models.Rating, len(ratings))
	for i := range ratings {
		ratingViews[i] = ratings[i].View()
	}

	ingredients := []string(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	instructions := []string(r.Instructions)
	if instructions == nil {
		instructions = []string{}
	}

	return models.Recipe{
		ID:            r.RecipeID,
		Title:         r.Title,
		Description:   r.Description,
		Ingredients:   ingredients,
		Instructions:  instructions,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		Servings:      r.Servings,
		Difficulty:    r.Difficulty,
		ImageURL:      r.ImageURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		AuthorID:      r.AuthorID,
		Author:        models.User{ID: r.AuthorID, Name: r.AuthorName, Email: r.AuthorEmail},
		Ratings:       ratingViews,
		AverageRating: average,
		Count:         models.RatingCount{Ratings: count},
	}
}
