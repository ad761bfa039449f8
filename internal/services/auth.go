package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/repositories"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)     // nil when absent
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) // nil when absent
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// TokenRevoker denylists a token until it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	jwt     JWTGenerator
	revoker TokenRevoker
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, revoker TokenRevoker) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		jwt:     jwt,
		revoker: revoker,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and signs them in.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (string, *models.User, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to check user exists", "err", err)
		return "", nil, err
	}
	if existing != nil {
		log.Warnw("user already exists", "email", email)
		return "", nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return "", nil, err
	}

	now := time.Now().UTC()
	user := models.UserDB{
		UserID:       uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := svc.writer.Save(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return "", nil, ErrUserAlreadyExists
		}
		log.Errorw("failed to save user", "err", err)
		return "", nil, err
	}

	return svc.signIn(ctx, &user)
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		log.Warnw("user does not exist", "email", email)
		return "", nil, ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warnw("invalid credentials", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	return svc.signIn(ctx, user)
}

// Profile returns the public view of userID.
func (svc *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}
	public := user.Public()
	return &public, nil
}

// Logout revokes the token until its natural expiry.
func (svc *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := svc.revoker.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		logger.FromContext(ctx).Errorw("failed to revoke token", "err", err)
		return err
	}
	return nil
}

func (svc *AuthService) signIn(ctx context.Context, user *models.UserDB) (string, *models.User, error) {
	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}
	public := user.Public()
	return token, &public, nil
}
