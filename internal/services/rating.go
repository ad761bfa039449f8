package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/metrics"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=rating.go -destination=mock_rating.go -package=services

// ErrRecipeNotFound is returned when the target recipe does not exist.
var ErrRecipeNotFound = errors.New("recipe not found")

// RatingReader looks up a user's rating of a recipe.
type RatingReader interface {
	Find(ctx context.Context, userID, recipeID uuid.UUID) (*models.RatingDB, error) // nil when absent
}

// RatingWriter creates or overwrites a rating atomically.
type RatingWriter interface {
	Upsert(ctx context.Context, userID, recipeID uuid.UUID, score int, review *string, at, staleBefore time.Time) (*models.RatingDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RatingService owns the rating lifecycle of a (user, recipe) pair.
type RatingService struct {
	recipes     RecipeReader
	reader      RatingReader
	writer      RatingWriter
	kafkaWriter KafkaWriter
	policy      CooldownPolicy
	now         func() time.Time
}

// RatingOption configures a RatingService.
type RatingOption func(*RatingService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RatingOption {
	return func(s *RatingService) {
		s.now = now
	}
}

// WithCooldown replaces the default cooldown window.
func WithCooldown(window time.Duration) RatingOption {
	return func(s *RatingService) {
		s.policy = NewCooldownPolicy(window)
	}
}

// NewRatingService creates a RatingService. kafkaWriter may be nil.
func NewRatingService(
	recipes RecipeReader,
	reader RatingReader,
	writer RatingWriter,
	kafkaWriter KafkaWriter,
	opts ...RatingOption,
) *RatingService {
	s := &RatingService{
		recipes:     recipes,
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
		policy:      NewCooldownPolicy(RatingCooldown),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rate records userID's score for recipeID. The first call creates the
// rating; later calls overwrite it in place once the cooldown has elapsed.
// created reports whether a new row was inserted.
func (s *RatingService) Rate(ctx context.Context, userID, recipeID uuid.UUID, score int, review *string) (rating *models.Rating, created bool, err error) {
	log := logger.FromContext(ctx)
	// postgres keeps microseconds; the cooldown must compare what was stored
	now := s.now().UTC().Truncate(time.Microsecond)

	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		log.Errorw("failed to get recipe", "recipeID", recipeID, "error", err)
		metrics.RecordRatingSubmission(metrics.RatingOutcomeError)
		return nil, false, err
	}
	if recipe == nil {
		metrics.RecordRatingSubmission(metrics.RatingOutcomeNotFound)
		return nil, false, ErrRecipeNotFound
	}

	existing, err := s.reader.Find(ctx, userID, recipeID)
	if err != nil {
		log.Errorw("failed to get rating", "userID", userID, "recipeID", recipeID, "error", err)
		metrics.RecordRatingSubmission(metrics.RatingOutcomeError)
		return nil, false, err
	}

	if err := s.checkCooldown(existing, now); err != nil {
		log.Warnw("rating cooldown active", "userID", userID, "recipeID", recipeID, "error", err)
		metrics.RecordRatingSubmission(metrics.RatingOutcomeCooldown)
		return nil, false, err
	}

	saved, err := s.writer.Upsert(ctx, userID, recipeID, score, review, now, s.policy.StaleBefore(now))
	if err != nil {
		log.Errorw("failed to save rating", "userID", userID, "recipeID", recipeID, "error", err)
		metrics.RecordRatingSubmission(metrics.RatingOutcomeError)
		return nil, false, err
	}
	if saved == nil {
		// a concurrent write refreshed the row between Find and Upsert
		err := s.cooldownAfterRace(ctx, userID, recipeID, now)
		log.Warnw("rating update lost a race", "userID", userID, "recipeID", recipeID, "error", err)
		if errors.Is(err, ErrRecipeNotFound) {
			metrics.RecordRatingSubmission(metrics.RatingOutcomeNotFound)
		} else {
			metrics.RecordRatingSubmission(metrics.RatingOutcomeCooldown)
		}
		return nil, false, err
	}

	created = existing == nil
	operation := models.RatingUpdated
	outcome := metrics.RatingOutcomeUpdated
	if created {
		operation = models.RatingCreated
		outcome = metrics.RatingOutcomeCreated
	}
	metrics.RecordRatingSubmission(outcome)

	s.publishRating(ctx, saved, operation)

	view := saved.View()
	return &view, created, nil
}

func (s *RatingService) checkCooldown(existing *models.RatingDB, now time.Time) error {
	if existing == nil {
		return nil
	}
	return s.policy.Check(&existing.UpdatedAt, now)
}

func (s *RatingService) cooldownAfterRace(ctx context.Context, userID, recipeID uuid.UUID, now time.Time) error {
	current, err := s.reader.Find(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if current == nil {
		// the recipe was deleted and its ratings cascaded
		return ErrRecipeNotFound
	}
	if err := s.checkCooldown(current, now); err != nil {
		return err
	}
	return &CooldownError{RemainingSeconds: int(s.policy.Window.Seconds())}
}

// publishRating publishes a rating event to Kafka. Failures are logged, not returned.
func (s *RatingService) publishRating(ctx context.Context, rating *models.RatingDB, operation string) {
	log := logger.FromContext(ctx)
	if s.kafkaWriter == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "rating_id", rating.RatingID)
		return
	}

	event := models.RatingEvent{
		EventID:   uuid.NewString(),
		Timestamp: rating.UpdatedAt.Unix(),
		RatingID:  rating.RatingID.String(),
		RecipeID:  rating.RecipeID.String(),
		UserID:    rating.UserID.String(),
		Rating:    rating.Rating,
		Operation: operation,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal rating event", "rating_id", event.RatingID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.RecipeID),
		Value: data,
	}

	err = s.kafkaWriter.WriteMessages(ctx, msg)
	metrics.RecordRatingEvent(err)
	if err != nil {
		log.Errorw("Failed to publish rating event to Kafka", "rating_id", event.RatingID, "error", err)
		return
	}
	log.Infow("Rating event published to Kafka", "rating_id", event.RatingID, "operation", operation)
}
