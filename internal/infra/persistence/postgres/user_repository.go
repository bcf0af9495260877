// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"
	"time"

	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sortColumns maps the public sort keys onto table columns.
var sortColumns = map[string]string{
	entity.SortByCreatedAt: "created_at",
	entity.SortByFirstName: "first_name",
	entity.SortByLastName:  "last_name",
	entity.SortByEmail:     "email",
}

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db:  db,
		now: time.Now,
	}
}

// Create inserts the user in a single statement. The unique email index decides races between
// concurrent registrations, so a duplicate surfaces here rather than in a prior existence check.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	user.Email = normalizeEmail(user.Email)

	userM := model.FromUserEntity(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUserAlreadyExists
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrMissingFields.WrapMessage("user row rejected by constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userM.ToEntity(), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return userM.ToEntity(), nil
}

func (repo *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", normalizeEmail(email)).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return count > 0, nil
}

func (repo *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error) {
	cols := model.ProfileColumns(update)
	if len(cols) == 0 {
		return repo.FindByID(ctx, id)
	}
	cols["updated_at"] = repo.now()

	return repo.updateColumns(ctx, id, cols, "failed to update profile")
}

func (repo *userRepository) UpdateLocation(ctx context.Context, id uuid.UUID, location *entity.Location) (*entity.User, error) {
	var row model.UserModel
	row.SetLocation(location)

	cols := map[string]any{
		"latitude":           row.Latitude,
		"longitude":          row.Longitude,
		"location_accuracy":  row.LocationAccuracy,
		"location_timestamp": row.LocationTimestamp,
		"updated_at":         repo.now(),
	}

	return repo.updateColumns(ctx, id, cols, "failed to update location")
}

func (repo *userRepository) SetEarthCharterSigned(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	cols := map[string]any{
		"earth_charter_signed": true,
		"updated_at":           repo.now(),
	}

	return repo.updateColumns(ctx, id, cols, "failed to sign earth charter")
}

func (repo *userRepository) updateColumns(ctx context.Context, id uuid.UUID, cols map[string]any, msg string) (*entity.User, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		UpdateColumns(cols)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) || isNotNullConstraintViolation(result.Error) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, msg)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return repo.FindByID(ctx, id)
}

// List returns one page of users matching the filter, plus the total number of matches.
func (repo *userRepository) List(ctx context.Context, query entity.UserListQuery) (*entity.UserPage, error) {
	base := repo.applyFilter(repo.db.WithContext(ctx).Model(&model.UserModel{}), query.Filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	var rows []*model.UserModel
	err := base.Session(&gorm.Session{}).
		Order(orderClause(query.SortBy, query.SortOrder)).
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.ToEntity())
	}

	return &entity.UserPage{Users: users, Total: total}, nil
}

func (repo *userRepository) applyFilter(db *gorm.DB, filter entity.UserFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		db = db.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if filter.Gender != nil {
		db = db.Where("gender = ?", string(*filter.Gender))
	}
	if filter.EarthCharterSigned != nil {
		db = db.Where("earth_charter_signed = ?", *filter.EarthCharterSigned)
	}

	return db
}

func (repo *userRepository) FindWithLocation(ctx context.Context, excludeID uuid.UUID) ([]*entity.User, error) {
	var rows []*model.UserModel
	err := repo.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("id <> ?", excludeID).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users with location")
	}

	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.ToEntity())
	}

	return users, nil
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

type statsRow struct {
	TotalUsers         int64
	EarthCharterSigned int64
	MaleUsers          int64
	FemaleUsers        int64
}

func (repo *userRepository) Stats(ctx context.Context) (*entity.UserStats, error) {
	var row statsRow
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select(
			"COUNT(*) AS total_users, "+
				"COUNT(*) FILTER (WHERE earth_charter_signed) AS earth_charter_signed, "+
				"COUNT(*) FILTER (WHERE gender = ?) AS male_users, "+
				"COUNT(*) FILTER (WHERE gender = ?) AS female_users",
			string(entity.GenderMale), string(entity.GenderFemale),
		).
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate user stats")
	}

	return &entity.UserStats{
		TotalUsers:         row.TotalUsers,
		EarthCharterSigned: row.EarthCharterSigned,
		MaleUsers:          row.MaleUsers,
		FemaleUsers:        row.FemaleUsers,
	}, nil
}

func orderClause(sortBy string, order entity.SortOrder) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = sortColumns[entity.SortByCreatedAt]
	}
	dir := "DESC"
	if order == entity.SortAsc {
		dir = "ASC"
	}

	return col + " " + dir + ", id " + dir
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
