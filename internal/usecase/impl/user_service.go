package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	deliverycontext "gaia/internal/delivery/context"
	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/domain/service"
	"gaia/internal/infra/geo"
	"gaia/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Listing and nearby-search limits.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit inside an int for every allowed limit.
	MaxPage = math.MaxInt / MaxPageLimit

	DefaultNearbyRadiusKm = 50.0
	MaxNearbyRadiusKm     = 20000.0
)

var sortableFields = map[string]bool{
	entity.SortByCreatedAt: true,
	entity.SortByFirstName: true,
	entity.SortByLastName:  true,
	entity.SortByEmail:     true,
}

// userService implements the UserUsecase interface.
type userService struct {
	userRepo  repository.UserRepository
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:  params.UserRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return findUser(ctx, srv.userRepo, userID)
}

// UpdateProfile applies the editable fields. Gender and birth year are re-validated when present.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error) {
	if update == nil {
		update = &entity.ProfileUpdate{}
	}
	if update.Gender != nil && !update.Gender.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Gender must be Male or Female")
	}
	if update.BirthYear != nil && (*update.BirthYear <= 0 || *update.BirthYear > srv.now().Year()) {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Birth year is out of range")
	}
	for _, name := range []*string{update.FirstName, update.LastName} {
		if name != nil && strings.TrimSpace(*name) == "" {
			return nil, domainerrors.ErrValidationFailed.WithMessage("First and last name cannot be empty")
		}
	}
	if update.EducationLevel != nil {
		level := strings.ReplaceAll(*update.EducationLevel, "-", " ")
		update.EducationLevel = &level
	}

	user, err := srv.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, srv.mapWriteError(ctx, err, "failed to update profile")
	}

	return user, nil
}

func (srv *userService) UpdateLocation(ctx context.Context, userID uuid.UUID, input *usecase.LocationInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidLocation
	}
	location, err := locationFromInput(input, srv.now)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.UpdateLocation(ctx, userID, location)
	if err != nil {
		return nil, srv.mapWriteError(ctx, err, "failed to update location")
	}

	locationUpdatesTotal.Inc()

	return user, nil
}

// SignEarthCharter is idempotent: signing again returns the member unchanged.
func (srv *userService) SignEarthCharter(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.SetEarthCharterSigned(ctx, userID)
	if err != nil {
		return nil, srv.mapWriteError(ctx, err, "failed to sign earth charter")
	}

	charterSignaturesTotal.Inc()
	srv.log(ctx).Info("Earth Charter signed", slog.Any("userID", userID))

	event := newMemberEvent(ctx, service.EventEarthCharterSigned, userID, srv.now)
	event.GenerationalIdentity = user.GenerationalIdentity
	event.HasLocation = user.Location != nil
	publishMemberEvent(ctx, srv.publisher, srv.log(ctx), event)

	return user, nil
}

func (srv *userService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	query, err := buildListQuery(input)
	if err != nil {
		return nil, err
	}

	page, err := srv.userRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	totalPages := int(math.Ceil(float64(page.Total) / float64(query.Limit)))

	return &usecase.ListUsersOutput{
		Users: page.Users,
		Pagination: usecase.Pagination{
			CurrentPage: query.Page,
			TotalPages:  totalPages,
			TotalUsers:  page.Total,
			HasNextPage: query.Page < totalPages,
			HasPrevPage: query.Page > 1,
		},
	}, nil
}

func buildListQuery(input *usecase.ListUsersInput) (entity.UserListQuery, error) {
	if input == nil {
		input = &usecase.ListUsersInput{}
	}

	query := entity.UserListQuery{
		Page:      input.Page,
		Limit:     input.Limit,
		SortBy:    input.SortBy,
		SortOrder: entity.SortOrder(strings.ToLower(input.SortOrder)),
		Filter: entity.UserFilter{
			Search:             strings.TrimSpace(input.Search),
			EarthCharterSigned: input.EarthCharterSigned,
		},
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Page > MaxPage {
		return query, domainerrors.ErrValidationFailed.WithMessage("page is out of range")
	}
	switch {
	case query.Limit <= 0:
		query.Limit = DefaultPageLimit
	case query.Limit > MaxPageLimit:
		query.Limit = MaxPageLimit
	}

	if query.SortBy == "" {
		query.SortBy = entity.SortByCreatedAt
	}
	if !sortableFields[query.SortBy] {
		return query, domainerrors.ErrValidationFailed.WithMessage("sortBy must be one of createdAt, firstName, lastName, email")
	}

	switch query.SortOrder {
	case "":
		query.SortOrder = entity.SortDesc
	case entity.SortAsc, entity.SortDesc:
	default:
		return query, domainerrors.ErrValidationFailed.WithMessage("sortOrder must be asc or desc")
	}

	if input.Gender != "" {
		gender := entity.Gender(input.Gender)
		if !gender.IsValid() {
			return query, domainerrors.ErrValidationFailed.WithMessage("Gender must be Male or Female")
		}
		query.Filter.Gender = &gender
	}

	return query, nil
}

func (srv *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		return srv.mapWriteError(ctx, err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", userID))
	publishMemberEvent(ctx, srv.publisher, srv.log(ctx), newMemberEvent(ctx, service.EventUserDeleted, userID, srv.now))

	return nil
}

func (srv *userService) Stats(ctx context.Context) (*entity.UserStats, error) {
	stats, err := srv.userRepo.Stats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user stats")
	}

	return stats, nil
}

// Nearby needs the caller's own stored location as the search center.
func (srv *userService) Nearby(ctx context.Context, userID uuid.UUID, radiusKm float64) ([]entity.NearbyUser, error) {
	if radiusKm == 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	if radiusKm < 0 || radiusKm > MaxNearbyRadiusKm || math.IsNaN(radiusKm) {
		return nil, domainerrors.ErrValidationFailed.WithMessage("radiusKm must be between 0 and 20000")
	}

	me, err := findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if me.Location == nil {
		return nil, domainerrors.ErrNoStoredLocation
	}

	candidates, err := srv.userRepo.FindWithLocation(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load located users")
	}

	return geo.WithinRadius(*me.Location, candidates, radiusKm), nil
}

func (srv *userService) mapWriteError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
		return err
	}

	srv.log(ctx).Error(msg, slog.Any("error", err))

	return errors.Wrap(err, msg)
}
