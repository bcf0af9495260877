package mongo

import (
	"context"
	"regexp"
	"strings"
	"time"

	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/errors"
	"gaia/internal/infra/persistence/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sortFields = map[string]string{
	entity.SortByCreatedAt: "createdAt",
	entity.SortByFirstName: "firstName",
	entity.SortByLastName:  "lastName",
	entity.SortByEmail:     "email",
}

type userRepository struct {
	users *mongodriver.Collection
	now   func() time.Time
}

// NewUserRepository returns a repository.UserRepository backed by the users collection.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{
		users: store.users,
		now:   time.Now,
	}
}

// toMS truncates to the millisecond precision BSON dates keep.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	now := toMS(repo.now())
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := repo.users.InsertOne(ctx, model.NewUserDocument(user)); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return repository.ErrUserAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, "failed to find user by id")
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: normalizeEmail(email)}}, "failed to find user by email")
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.D, msg string) (*entity.User, error) {
	var doc model.UserDocument
	if err := repo.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, msg)
	}

	return doc.ToEntity(), nil
}

func (repo *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := repo.users.CountDocuments(ctx,
		bson.D{{Key: "email", Value: normalizeEmail(email)}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return n > 0, nil
}

func (repo *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error) {
	fields := model.ProfileFields(update)
	if len(fields) == 0 {
		return repo.FindByID(ctx, id)
	}

	return repo.set(ctx, id, fields, "failed to update profile")
}

func (repo *userRepository) UpdateLocation(ctx context.Context, id uuid.UUID, location *entity.Location) (*entity.User, error) {
	if location == nil {
		return repo.apply(ctx, id, bson.D{
			{Key: "$unset", Value: bson.D{{Key: "location", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: toMS(repo.now())}}},
		}, "failed to clear location")
	}

	loc := model.NewLocationDocument(location)
	loc.Timestamp = toMS(loc.Timestamp)

	return repo.set(ctx, id, bson.M{"location": loc}, "failed to update location")
}

func (repo *userRepository) SetEarthCharterSigned(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.set(ctx, id, bson.M{"earthCharterSigned": true}, "failed to sign earth charter")
}

func (repo *userRepository) set(ctx context.Context, id uuid.UUID, fields bson.M, msg string) (*entity.User, error) {
	fields["updatedAt"] = toMS(repo.now())

	return repo.apply(ctx, id, bson.D{{Key: "$set", Value: fields}}, msg)
}

func (repo *userRepository) apply(ctx context.Context, id uuid.UUID, update bson.D, msg string) (*entity.User, error) {
	var doc model.UserDocument
	err := repo.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, msg)
	}

	return doc.ToEntity(), nil
}

func (repo *userRepository) List(ctx context.Context, query entity.UserListQuery) (*entity.UserPage, error) {
	filter := buildFilter(query.Filter)

	total, err := repo.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	opts := options.Find().
		SetSort(sortSpec(query.SortBy, query.SortOrder)).
		SetSkip(int64(query.Offset())).
		SetLimit(int64(query.Limit))

	users, err := repo.find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &entity.UserPage{Users: users, Total: total}, nil
}

func (repo *userRepository) FindWithLocation(ctx context.Context, excludeID uuid.UUID) ([]*entity.User, error) {
	filter := bson.D{
		{Key: "location", Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: nil}}},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID.String()}}},
	}

	users, err := repo.find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users with location")
	}

	return users, nil
}

func (repo *userRepository) find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]*entity.User, error) {
	cur, err := repo.users.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []model.UserDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].ToEntity())
	}

	return users, nil
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := repo.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}
	if res.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

type statsResult struct {
	TotalUsers         int64 `bson:"totalUsers"`
	EarthCharterSigned int64 `bson:"earthCharterSigned"`
	MaleUsers          int64 `bson:"maleUsers"`
	FemaleUsers        int64 `bson:"femaleUsers"`
}

func (repo *userRepository) Stats(ctx context.Context) (*entity.UserStats, error) {
	countIf := func(cond any) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{cond, 1, 0}}}}}
	}
	pipeline := mongodriver.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalUsers", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "earthCharterSigned", Value: countIf(bson.D{{Key: "$eq", Value: bson.A{"$earthCharterSigned", true}}})},
			{Key: "maleUsers", Value: countIf(bson.D{{Key: "$eq", Value: bson.A{"$gender", string(entity.GenderMale)}}})},
			{Key: "femaleUsers", Value: countIf(bson.D{{Key: "$eq", Value: bson.A{"$gender", string(entity.GenderFemale)}}})},
		}}},
	}

	cur, err := repo.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate user stats")
	}
	defer cur.Close(ctx)

	var results []statsResult
	if err := cur.All(ctx, &results); err != nil {
		return nil, errors.Wrap(err, "failed to decode user stats")
	}

	// An empty collection produces no group at all.
	if len(results) == 0 {
		return &entity.UserStats{}, nil
	}
	r := results[0]

	return &entity.UserStats{
		TotalUsers:         r.TotalUsers,
		EarthCharterSigned: r.EarthCharterSigned,
		MaleUsers:          r.MaleUsers,
		FemaleUsers:        r.FemaleUsers,
	}, nil
}

func buildFilter(f entity.UserFilter) bson.D {
	filter := bson.D{}
	if search := strings.TrimSpace(f.Search); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "firstName", Value: re}},
			bson.D{{Key: "lastName", Value: re}},
			bson.D{{Key: "email", Value: re}},
		}})
	}
	if f.Gender != nil {
		filter = append(filter, bson.E{Key: "gender", Value: string(*f.Gender)})
	}
	if f.EarthCharterSigned != nil {
		filter = append(filter, bson.E{Key: "earthCharterSigned", Value: *f.EarthCharterSigned})
	}

	return filter
}

func sortSpec(sortBy string, order entity.SortOrder) bson.D {
	field, ok := sortFields[sortBy]
	if !ok {
		field = sortFields[entity.SortByCreatedAt]
	}
	dir := -1
	if order == entity.SortAsc {
		dir = 1
	}

	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
