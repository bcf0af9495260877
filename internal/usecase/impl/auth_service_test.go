package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"gaia/config"
	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/domain/service"
	mockRepo "gaia/internal/mocks/repository"
	mockSvc "gaia/internal/mocks/service"
	"gaia/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      *authService
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	return createTestAuthServiceWithConfig(t, newTestConfig())
}

func createTestAuthServiceWithConfig(t *testing.T, cfg *config.Config) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	srv := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	}).(*authService)
	srv.now = fixedNow

	return authServiceFixtures{
		service:      srv,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName: "Ana",
		LastName:  "Lopez",
		Gender:    "Female",
		BirthYear: 1990,
		Email:     "Ana@Example.com ",
		Password:  "Abcdef1!",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := validRegisterInput()
	input.EducationLevel = "bachelors-degree"
	input.GenerationalIdentity = "Generation Y"

	fx.hasher.EXPECT().Hash("Abcdef1!").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = uuid.New()
		}).
		Return(nil)
	fx.tokenService.EXPECT().IssueToken(mock.AnythingOfType("uuid.UUID")).Return("signed-token", nil)

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, "hashed_password", out.User.PasswordHash)
	assert.Equal(t, "bachelors degree", out.User.EducationLevel)
	assert.Equal(t, "Generation Y", out.User.GenerationalIdentity, "stored verbatim, never recomputed")
	assert.False(t, out.User.EarthCharterSigned)
	assert.Nil(t, out.User.Location)
}

func TestAuthService_Register_WithLocation(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	input := validRegisterInput()
	input.Location = &usecase.LocationInput{Latitude: ptr(40.4), Longitude: ptr(-3.7), Accuracy: ptr(25.0)}

	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.tokenService.EXPECT().IssueToken(mock.Anything).Return("signed-token", nil)

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, out.User.Location)
	assert.InDelta(t, 40.4, out.User.Location.Latitude, 1e-9)
	assert.Equal(t, fixedNow(), out.User.Location.Timestamp)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *usecase.RegisterInput)
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing names",
			mutate:  func(in *usecase.RegisterInput) { in.FirstName = " "; in.LastName = "" },
			wantErr: domainerrors.ErrMissingFields,
			wantMsg: "Required fields: firstName, lastName",
		},
		{
			name:    "missing birth year",
			mutate:  func(in *usecase.RegisterInput) { in.BirthYear = 0 },
			wantErr: domainerrors.ErrMissingFields,
			wantMsg: "Required fields: birthYear",
		},
		{
			name:    "malformed email",
			mutate:  func(in *usecase.RegisterInput) { in.Email = "ana@example" },
			wantErr: domainerrors.ErrInvalidEmail,
		},
		{
			name:    "unknown gender",
			mutate:  func(in *usecase.RegisterInput) { in.Gender = "Other" },
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "future birth year",
			mutate:  func(in *usecase.RegisterInput) { in.BirthYear = 2030 },
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "weak password",
			mutate:  func(in *usecase.RegisterInput) { in.Password = "abcdefgh" },
			wantErr: domainerrors.ErrPasswordStrength,
		},
		{
			name:    "password without special character under strict policy",
			mutate:  func(in *usecase.RegisterInput) { in.Password = "Abcdefg1" },
			wantErr: domainerrors.ErrPasswordStrength,
		},
		{
			name:    "password longer than bcrypt accepts",
			mutate:  func(in *usecase.RegisterInput) { in.Password = "Aa1!" + strings.Repeat("x", 70) },
			wantErr: domainerrors.ErrPasswordStrength,
		},
		{
			name: "location without longitude",
			mutate: func(in *usecase.RegisterInput) {
				in.Location = &usecase.LocationInput{Latitude: ptr(10.0)}
			},
			wantErr: domainerrors.ErrInvalidLocation,
		},
		{
			name: "latitude out of range",
			mutate: func(in *usecase.RegisterInput) {
				in.Location = &usecase.LocationInput{Latitude: ptr(91.0), Longitude: ptr(0.0)}
			},
			wantErr: domainerrors.ErrInvalidLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fx := createTestAuthService(t)
			input := validRegisterInput()
			tt.mutate(input)

			_, err := fx.service.Register(context.Background(), input)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				var appErr domainerrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantMsg, appErr.Message())
			}
		})
	}
}

func TestAuthService_Register_BasicPolicyAcceptsNoSpecial(t *testing.T) {
	cfg := newTestConfig()
	cfg.PasswordStrength.RequireSpecial = false
	fx := createTestAuthServiceWithConfig(t, cfg)
	ctx := context.Background()
	input := validRegisterInput()
	input.Password = "Abcdefg1"

	fx.hasher.EXPECT().Hash("Abcdefg1").Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.tokenService.EXPECT().IssueToken(mock.Anything).Return("signed-token", nil)

	_, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrUserAlreadyExists)

	_, err := fx.service.Register(ctx, validRegisterInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(dbErr)

	_, err := fx.service.Register(ctx, validRegisterInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)

	fx.hasher.EXPECT().Hash(mock.Anything).Return("", errors.New("entropy"))

	_, err := fx.service.Register(context.Background(), validRegisterInput())

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	user := newTestUser()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "ana@example.com").Return(user, nil)
		fx.hasher.EXPECT().Check("Abcdef1!", user.PasswordHash).Return(true)
		fx.tokenService.EXPECT().IssueToken(user.ID).Return("signed-token", nil)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: " ANA@example.com", Password: "Abcdef1!"})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
		assert.Equal(t, user, out.User)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		t.Parallel()
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "ana@example.com").Return(user, nil)
		fx.hasher.EXPECT().Check("wrong", user.PasswordHash).Return(false)
		fx.userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)
		fx.hasher.EXPECT().Hash(missingUserPassword).Return("missing_hash", nil).Once()
		fx.hasher.EXPECT().Check("wrong", "missing_hash").Return(false)

		_, wrongPassword := fx.service.Login(ctx, &usecase.LoginInput{Email: "ana@example.com", Password: "wrong"})
		_, unknownEmail := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "wrong"})

		assert.ErrorIs(t, wrongPassword, domainerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("unknown email still compares a hash", func(t *testing.T) {
		t.Parallel()
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound).Times(2)
		fx.hasher.EXPECT().Hash(missingUserPassword).Return("missing_hash", nil).Once()
		fx.hasher.EXPECT().Check("guess-1", "missing_hash").Return(false).Once()
		fx.hasher.EXPECT().Check("guess-2", "missing_hash").Return(false).Once()

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "guess-1"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		_, err = fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "guess-2"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		fx := createTestAuthService(t)

		_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "ana@example.com"})

		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestAuthService_Me(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := newTestUser()
	missing := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.userRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrUserNotFound)

	got, err := fx.service.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = fx.service.Me(ctx, missing)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_VerifyToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()
	issued := fixedNow()

	fx.tokenService.EXPECT().VerifyToken("good").Return(&service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}, nil)
	fx.tokenService.EXPECT().VerifyToken("expired").Return(nil, errors.New("token expired"))

	info, err := fx.service.VerifyToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, userID, info.UserID)
	assert.Equal(t, issued.Add(time.Hour), info.ExpiresAt)

	_, err = fx.service.VerifyToken(ctx, "expired")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	_, err = fx.service.VerifyToken(ctx, "  ")
	assert.ErrorIs(t, err, domainerrors.ErrTokenRequired)
}

func TestAuthService_RefreshToken_NotImplemented(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.RefreshToken(context.Background(), uuid.New())

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 501, appErr.HTTPCode())
}

func TestAuthService_CheckEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().EmailExists(ctx, "ana@example.com").Return(true, nil)

	exists, err := fx.service.CheckEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = fx.service.CheckEmail(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.CheckEmail(ctx, "not-an-email")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidEmail)
}
