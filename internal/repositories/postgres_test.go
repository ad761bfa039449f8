package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db))

	teardown := func() {
		db.Close()
		container.Terminate(ctx)
	}

	return db, teardown
}

func seedUser(t *testing.T, db *sqlx.DB, name string) models.UserDB {
	t.Helper()
	user := models.UserDB{
		UserID:       uuid.New(),
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Name:         name,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, NewUserWriteRepository(db).Save(context.Background(), &user))
	return user
}

func seedRecipe(t *testing.T, db *sqlx.DB, author models.UserDB, title string, createdAt time.Time) models.RecipeDB {
	t.Helper()
	recipe := models.RecipeDB{
		RecipeID:     uuid.New(),
		AuthorID:     author.UserID,
		Title:        title,
		Ingredients:  models.StringList{"flour", "water"},
		Instructions: models.StringList{"mix", "bake"},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, NewRecipeWriteRepository(db, nil).Create(context.Background(), &recipe))
	return recipe
}
