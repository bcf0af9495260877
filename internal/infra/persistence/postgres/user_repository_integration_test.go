package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"gaia/internal/domain/entity"
	"gaia/internal/domain/repository"
	"gaia/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run with: GO_TEST_INTEGRATION=1 go test ./internal/infra/persistence/postgres -run Integration

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "gaia", "POSTGRES_PASSWORD": "gaia", "POSTGRES_DB": "gaia"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=gaia password=gaia dbname=gaia sslmode=disable", host, port.Port())
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	return db
}

func newMember(email string, gender entity.Gender) *entity.User {
	return &entity.User{
		FirstName:    "Test",
		LastName:     "Member",
		Email:        email,
		PasswordHash: "$2a$12$hash",
		Gender:       gender,
		BirthYear:    1990,
	}
}

func TestUserRepositoryIntegration(t *testing.T) {
	db := startPostgres(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	ada := newMember("Ada@Example.com", entity.GenderFemale)
	require.NoError(t, repo.Create(ctx, ada))
	assert.NotEqual(t, uuid.Nil, ada.ID)
	assert.Equal(t, "ada@example.com", ada.Email)

	t.Run("duplicate email is a conflict regardless of case", func(t *testing.T) {
		err := repo.Create(ctx, newMember("ADA@example.com", entity.GenderFemale))
		assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
	})

	t.Run("lower(email) index rejects rows that skipped normalization", func(t *testing.T) {
		row := model.FromUserEntity(newMember("ADA@EXAMPLE.COM", entity.GenderFemale))
		row.ID = uuid.New()

		err := db.WithContext(ctx).Create(row).Error
		require.Error(t, err)
		assert.True(t, isUniqueConstraintViolation(err))
	})

	t.Run("lookup by email", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, " ada@EXAMPLE.com")
		require.NoError(t, err)
		assert.Equal(t, ada.ID, got.ID)

		exists, err := repo.EmailExists(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("location and charter", func(t *testing.T) {
		acc := 8.0
		got, err := repo.UpdateLocation(ctx, ada.ID, &entity.Location{Latitude: 10, Longitude: 20, Accuracy: &acc, Timestamp: time.Now().UTC()})
		require.NoError(t, err)
		require.NotNil(t, got.Location)
		assert.InDelta(t, 10.0, got.Location.Latitude, 1e-9)

		got, err = repo.SetEarthCharterSigned(ctx, ada.ID)
		require.NoError(t, err)
		assert.True(t, got.EarthCharterSigned)

		_, err = repo.SetEarthCharterSigned(ctx, ada.ID)
		assert.NoError(t, err)
	})

	t.Run("profile update keeps email", func(t *testing.T) {
		first := "Augusta"
		got, err := repo.UpdateProfile(ctx, ada.ID, &entity.ProfileUpdate{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Augusta", got.FirstName)
		assert.Equal(t, "ada@example.com", got.Email)
	})

	t.Run("list stats and nearby", func(t *testing.T) {
		bob := newMember("bob@example.com", entity.GenderMale)
		require.NoError(t, repo.Create(ctx, bob))

		page, err := repo.List(ctx, entity.UserListQuery{Page: 1, Limit: 1, SortBy: entity.SortByEmail, SortOrder: entity.SortAsc})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		require.Len(t, page.Users, 1)
		assert.Equal(t, "ada@example.com", page.Users[0].Email)

		male := entity.GenderMale
		page, err = repo.List(ctx, entity.UserListQuery{Filter: entity.UserFilter{Gender: &male}, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &entity.UserStats{TotalUsers: 2, EarthCharterSigned: 1, MaleUsers: 1, FemaleUsers: 1}, stats)

		located, err := repo.FindWithLocation(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, located, 1)
		assert.Equal(t, ada.ID, located[0].ID)
	})

	t.Run("concurrent registrations create exactly one account", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, newMember("race@example.com", entity.GenderMale))
			}(i)
		}
		wg.Wait()

		created := 0
		for _, err := range errs {
			if err == nil {
				created++
			} else {
				assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
			}
		}
		assert.Equal(t, 1, created)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ada.ID))
		assert.ErrorIs(t, repo.Delete(ctx, ada.ID), repository.ErrUserNotFound)

		_, err := repo.FindByID(ctx, ada.ID)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
