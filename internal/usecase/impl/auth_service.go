// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gaia/config"
	deliverycontext "gaia/internal/delivery/context"
	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/domain/service"
	"gaia/internal/domain/validation"
	"gaia/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bcrypt ignores everything past 72 bytes, so longer passwords would silently collide.
const maxPasswordBytes = 72

// missingUserPassword is hashed once and compared against on logins for unknown emails.
const missingUserPassword = "gaia-missing-user"

// registerRequiredFields are checked in this order; the message lists the missing ones.
var registerRequiredFields = []string{"firstName", "lastName", "gender", "birthYear", "email", "password"}

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	policy       validation.PasswordPolicy
	logger       *slog.Logger
	now          func() time.Time

	missingHashOnce sync.Once
	missingHash     string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		policy:       passwordPolicyFromConfig(params.Config),
		logger:       params.Logger,
		now:          time.Now,
	}
}

func passwordPolicyFromConfig(cfg *config.Config) validation.PasswordPolicy {
	if cfg == nil || cfg.PasswordStrength == nil {
		return validation.StrictPasswordPolicy()
	}

	ps := cfg.PasswordStrength
	policy := validation.PasswordPolicy{
		MinLength:        ps.MinLength,
		RequireUppercase: ps.RequireUppercase,
		RequireLowercase: ps.RequireLowercase,
		RequireNumbers:   ps.RequireNumbers,
		RequireSpecial:   ps.RequireSpecial,
	}
	if policy.MinLength <= 0 {
		policy.MinLength = validation.MinPasswordLength
	}

	return policy
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the form, stores the member with a single insert and issues a token.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	user, err := srv.buildUser(input)
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeRejected).Inc()

		return nil, err
	}

	if len(input.Password) > maxPasswordBytes {
		registrationsTotal.WithLabelValues(outcomeRejected).Inc()

		return nil, domainerrors.ErrPasswordStrength.WithMessage("Password must be at most 72 bytes long")
	}
	if violations := srv.policy.Violations(input.Password); len(violations) > 0 {
		registrationsTotal.WithLabelValues(outcomeRejected).Inc()

		return nil, domainerrors.ErrPasswordStrength.WithMessage(strings.Join(violations, ". "))
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}
	user.PasswordHash = hash

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			registrationsTotal.WithLabelValues(outcomeConflict).Inc()
			srv.log(ctx).Info("Registration rejected: email already registered")

			return nil, domainerrors.ErrUserAlreadyExists
		}
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		srv.log(ctx).Error("Failed to create user", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := srv.tokenService.IssueToken(user.ID)
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	registrationsTotal.WithLabelValues(outcomeSuccess).Inc()
	srv.log(ctx).Info("User registered",
		slog.Any("userID", user.ID),
		slog.Bool("withLocation", user.Location != nil),
	)

	event := newMemberEvent(ctx, service.EventUserRegistered, user.ID, srv.now)
	event.GenerationalIdentity = user.GenerationalIdentity
	event.HasLocation = user.Location != nil
	publishMemberEvent(ctx, srv.publisher, srv.log(ctx), event)

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// buildUser applies the request-shape rules and maps the form onto a new entity.
func (srv *authService) buildUser(input *usecase.RegisterInput) (*entity.User, error) {
	fields := map[string]any{
		"firstName": strings.TrimSpace(input.FirstName),
		"lastName":  strings.TrimSpace(input.LastName),
		"gender":    strings.TrimSpace(input.Gender),
		"birthYear": input.BirthYear,
		"email":     strings.TrimSpace(input.Email),
		"password":  input.Password,
	}
	if input.BirthYear == 0 {
		fields["birthYear"] = nil
	}
	if res := validation.RequiredFieldsPresent(fields, registerRequiredFields); !res.IsValid {
		return nil, domainerrors.ErrMissingFields.WithMessage("Required fields: " + strings.Join(res.MissingFields, ", "))
	}

	email := validation.NormalizeEmail(input.Email)
	if !validation.IsValidEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}

	gender := entity.Gender(strings.TrimSpace(input.Gender))
	if !gender.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Gender must be Male or Female")
	}

	if input.BirthYear < 0 || input.BirthYear > srv.now().Year() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Birth year is out of range")
	}

	location, err := srv.toLocation(input.Location)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		FirstName:                   strings.TrimSpace(input.FirstName),
		MiddleInitial:               strings.TrimSpace(input.MiddleInitial),
		LastName:                    strings.TrimSpace(input.LastName),
		Email:                       email,
		Gender:                      gender,
		BirthYear:                   input.BirthYear,
		BirthMonth:                  input.BirthMonth,
		BirthDay:                    input.BirthDay,
		GenerationalIdentity:        input.GenerationalIdentity,
		CitizenshipByBirth:          input.CitizenshipByBirth,
		BirthplaceProvinceState:     input.BirthplaceProvinceState,
		BirthplaceCity:              input.BirthplaceCity,
		CitizenshipByNaturalization: input.CitizenshipByNaturalization,
		EducationLevel:              strings.ReplaceAll(input.EducationLevel, "-", " "),
		Location:                    location,
	}, nil
}

// toLocation validates an optional sample. A nil input is a valid "no location".
func (srv *authService) toLocation(input *usecase.LocationInput) (*entity.Location, error) {
	return locationFromInput(input, srv.now)
}

// compareMissingUser runs one hash comparison so an unknown email takes as long as a wrong password.
func (srv *authService) compareMissingUser(ctx context.Context, password string) {
	srv.missingHashOnce.Do(func() {
		hash, err := srv.hasher.Hash(missingUserPassword)
		if err != nil {
			srv.log(ctx).Warn("Failed to prepare missing-user hash", slog.Any("error", err))

			return
		}
		srv.missingHash = hash
	})
	if srv.missingHash != "" {
		_ = srv.hasher.Check(password, srv.missingHash)
	}
}

// Login answers with the same error for an unknown email and a wrong password.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := validation.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		loginsTotal.WithLabelValues(outcomeRejected).Inc()

		return nil, domainerrors.ErrValidationFailed.WithMessage("Email and password are required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.compareMissingUser(ctx, input.Password)
			loginsTotal.WithLabelValues(outcomeRejected).Inc()

			return nil, domainerrors.ErrInvalidCredentials
		}
		loginsTotal.WithLabelValues(outcomeError).Inc()
		srv.log(ctx).Error("Failed to look up user for login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		loginsTotal.WithLabelValues(outcomeRejected).Inc()

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.IssueToken(user.ID)
	if err != nil {
		loginsTotal.WithLabelValues(outcomeError).Inc()

		return nil, errors.Wrap(err, "failed to issue token")
	}

	loginsTotal.WithLabelValues(outcomeSuccess).Inc()
	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return findUser(ctx, srv.userRepo, userID)
}

func (srv *authService) VerifyToken(_ context.Context, token string) (*usecase.TokenInfo, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainerrors.ErrTokenRequired
	}

	claims, err := srv.tokenService.VerifyToken(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	info := &usecase.TokenInfo{UserID: claims.UserID}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}

func (srv *authService) RefreshToken(_ context.Context, _ uuid.UUID) (*usecase.AuthOutput, error) {
	return nil, domainerrors.ErrNotImplemented
}

func (srv *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return false, domainerrors.ErrValidationFailed.WithMessage("Email is required")
	}
	if !validation.IsValidEmail(email) {
		return false, domainerrors.ErrInvalidEmail
	}

	exists, err := srv.userRepo.EmailExists(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return exists, nil
}
