package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gaia/internal/domain/entity"
	"gaia/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testTimeout = 10 * time.Second

var mongoURI string

// TestMain starts one MongoDB container for the package when GO_TEST_INTEGRATION is set.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo container: %v\n", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "27017/tcp")
	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()

	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func newTestRepository(t *testing.T) repository.UserRepository {
	t.Helper()
	if mongoURI == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	store, err := Connect(ctx, mongoURI, "gaia_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return NewUserRepository(store)
}

func TestBuildFilter(t *testing.T) {
	t.Parallel()

	assert.Empty(t, buildFilter(entity.UserFilter{}))

	female := entity.GenderFemale
	signed := true
	filter := buildFilter(entity.UserFilter{Search: " a.b ", Gender: &female, EarthCharterSigned: &signed})

	require.Len(t, filter, 3)
	or, ok := filter[0].Value.(bson.A)
	require.True(t, ok)
	re := or[0].(bson.D)[0].Value.(primitive.Regex)
	assert.Equal(t, `a\.b`, re.Pattern)
	assert.Equal(t, "i", re.Options)
	assert.Equal(t, bson.E{Key: "gender", Value: "Female"}, filter[1])
	assert.Equal(t, bson.E{Key: "earthCharterSigned", Value: true}, filter[2])
}

func TestSortSpec(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, sortSpec("", ""))
	assert.Equal(t, bson.D{{Key: "firstName", Value: 1}, {Key: "_id", Value: 1}}, sortSpec(entity.SortByFirstName, entity.SortAsc))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}, sortSpec("password", entity.SortAsc))
}

func TestUserRepository_Lifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	user := &entity.User{FirstName: "Ada", LastName: "Lovelace", Email: " ADA@example.com", PasswordHash: "h", Gender: entity.GenderFemale, BirthYear: 1990}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "ada@example.com", user.Email)

	dup := &entity.User{FirstName: "A", LastName: "L", Email: "ada@EXAMPLE.com", PasswordHash: "h", Gender: entity.GenderFemale, BirthYear: 1990}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrUserAlreadyExists)

	got, err := repo.FindByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Nil(t, got.Location)

	got, err = repo.UpdateLocation(ctx, user.ID, &entity.Location{Latitude: -33.9, Longitude: 151.2, Timestamp: time.Now()})
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	assert.InDelta(t, -33.9, got.Location.Latitude, 1e-9)

	got, err = repo.SetEarthCharterSigned(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.EarthCharterSigned)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entity.UserStats{TotalUsers: 1, EarthCharterSigned: 1, FemaleUsers: 1}, stats)

	located, err := repo.FindWithLocation(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, located, 1)

	page, err := repo.List(ctx, entity.UserListQuery{Filter: entity.UserFilter{Search: "love"}, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.SetEarthCharterSigned(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
