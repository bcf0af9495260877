// Package mongo implements the user store on MongoDB.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"gaia/config"
	"gaia/internal/domain/lifecycle"
	"gaia/internal/domain/repository"
	"gaia/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

const (
	usersCollection       = "users"
	defaultDatabase       = "gaia"
	defaultConnectTimeout = 10 * time.Second
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Store holds the client and the users collection.
type Store struct {
	client *mongodriver.Client
	users  *mongodriver.Collection
}

// New builds the client and registers ping/index hooks on the fx lifecycle.
// The driver dials lazily, so no network round trip happens before OnStart.
func New(params Params) (*Store, error) {
	cfg := params.Config.Mongo
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo: empty mongo.uri")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client, err := mongodriver.Connect(context.Background(), options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = defaultDatabase
	}
	store := &Store{
		client: client,
		users:  client.Database(dbName).Collection(usersCollection),
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := store.Ping(ctx); err != nil {
				return err
			}
			if err := store.EnsureIndexes(ctx); err != nil {
				return err
			}
			params.Logger.Info("MongoDB user store ready", slog.String("database", dbName))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return store.Close(ctx)
		},
	})

	return store, nil
}

// Connect opens a ready-to-use store outside fx, used by tests and tooling.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect MongoDB")
	}

	if database == "" {
		database = defaultDatabase
	}
	store := &Store{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}

	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, err
	}

	return store, nil
}

// Ping satisfies repository.HealthChecker.
func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx, readpref.Primary()), "failed to ping MongoDB")
}

func (s *Store) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "failed to disconnect MongoDB")
}

// EnsureIndexes creates the unique email index and the filter indexes used by listings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "gender", Value: 1}, {Key: "earthCharterSigned", Value: 1}},
			Options: options.Index().SetName("gender_charter"),
		},
	}

	if _, err := s.users.Indexes().CreateMany(ctx, models); err != nil {
		return errors.Wrap(err, "failed to ensure MongoDB indexes")
	}

	return nil
}

var _ repository.HealthChecker = (*Store)(nil)
