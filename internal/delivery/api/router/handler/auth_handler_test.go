package handler

import (
	"net/http"
	"testing"
	"time"

	domainerrors "gaia/internal/domain/errors"
	mockUC "gaia/internal/mocks/usecase"
	"gaia/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *mockUC.MockAuthUsecase) {
	uc := mockUC.NewMockAuthUsecase(t)

	return NewAuthHandler(AuthHandlerParams{AuthUC: uc, Logger: newDiscardLogger()}), uc
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("created without leaking the digest", func(t *testing.T) {
		t.Parallel()
		h, uc := newAuthHandler(t)
		user := testUser()

		uc.EXPECT().
			Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
				return in.BirthYear == 1990 && in.Email == "ana@example.com" && in.Location == nil
			})).
			Return(&usecase.AuthOutput{Token: "signed", User: user}, nil)

		body := `{"firstName":"Ana","lastName":"Lopez","gender":"Female","birthYear":"1990",` +
			`"email":"ana@example.com","password":"Abcdef1!","confirmPassword":"Abcdef1!"}`
		rec, env := serve(t, h.Register, http.MethodPost, "/api/auth/register", body, nil)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "User registered successfully", env.Message)
		assert.NotContains(t, rec.Body.String(), "secret-digest")
		assert.NotContains(t, rec.Body.String(), "password")

		out := decodeData[AuthResponse](t, env)
		assert.Equal(t, "signed", out.Token)
		assert.Equal(t, "Ana M. Lopez", out.User.Name)
		assert.False(t, out.User.EarthCharterSigned)
	})

	t.Run("location is forwarded", func(t *testing.T) {
		t.Parallel()
		h, uc := newAuthHandler(t)

		uc.EXPECT().
			Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
				return in.Location != nil && *in.Location.Latitude == 10 && in.Location.Longitude != nil
			})).
			Return(&usecase.AuthOutput{Token: "signed", User: testUser()}, nil)

		body := `{"firstName":"Ana","birthYear":1990,"location":{"latitude":10,"longitude":20}}`
		rec, _ := serve(t, h.Register, http.MethodPost, "/api/auth/register", body, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		t.Parallel()
		h, uc := newAuthHandler(t)

		uc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

		rec, env := serve(t, h.Register, http.MethodPost, "/api/auth/register", `{"email":"ana@example.com"}`, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "An account with this email address already exists", env.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		h, _ := newAuthHandler(t)

		rec, env := serve(t, h.Register, http.MethodPost, "/api/auth/register", `{"birthYear":"nineteen"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("out of range birth month fails validation", func(t *testing.T) {
		t.Parallel()
		h, _ := newAuthHandler(t)

		rec, env := serve(t, h.Register, http.MethodPost, "/api/auth/register", `{"birthMonth":13}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	h, uc := newAuthHandler(t)
	user := testUser()

	uc.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: "ana@example.com", Password: "Abcdef1!"}).
		Return(&usecase.AuthOutput{Token: "signed", User: user}, nil)
	uc.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: "ana@example.com", Password: "nope"}).
		Return(nil, domainerrors.ErrInvalidCredentials)

	rec, env := serve(t, h.Login, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"Abcdef1!"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed", decodeData[AuthResponse](t, env).Token)

	rec, env = serve(t, h.Login, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	h, uc := newAuthHandler(t)
	user := testUser()
	gone := uuid.New()

	uc.EXPECT().Me(mock.Anything, user.ID).Return(user, nil)
	uc.EXPECT().Me(mock.Anything, gone).Return(nil, domainerrors.ErrUserNotFound)

	rec, env := serve(t, h.Me, http.MethodGet, "/api/auth/me", "", asUser(user.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[UserEnvelope](t, env)
	assert.Equal(t, user.ID, got.User.ID)
	require.NotNil(t, got.User.Location)
	assert.InDelta(t, 40.4168, got.User.Location.Latitude, 1e-9)

	rec, _ = serve(t, h.Me, http.MethodGet, "/api/auth/me", "", asUser(gone))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = serve(t, h.Me, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_VerifyToken(t *testing.T) {
	t.Parallel()

	h, uc := newAuthHandler(t)
	userID := uuid.New()
	issued := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	uc.EXPECT().VerifyToken(mock.Anything, "good").
		Return(&usecase.TokenInfo{UserID: userID, IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}, nil)
	uc.EXPECT().VerifyToken(mock.Anything, "").Return(nil, domainerrors.ErrTokenRequired)

	rec, env := serve(t, h.VerifyToken, http.MethodPost, "/api/auth/verify-token", `{"token":"good"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeData[VerifyTokenResponse](t, env)
	assert.True(t, out.Valid)
	assert.Equal(t, userID.String(), out.Decoded.ID)

	rec, _ = serve(t, h.VerifyToken, http.MethodPost, "/api/auth/verify-token", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	h, uc := newAuthHandler(t)
	userID := uuid.New()

	uc.EXPECT().RefreshToken(mock.Anything, userID).Return(nil, domainerrors.ErrNotImplemented)

	rec, env := serve(t, h.RefreshToken, http.MethodPost, "/api/auth/refresh-token", "", asUser(userID))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "Refresh token functionality not implemented", env.Message)
}

func TestAuthHandler_LogoutAndCheckEmail(t *testing.T) {
	t.Parallel()

	h, uc := newAuthHandler(t)

	rec, env := serve(t, h.Logout, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	uc.EXPECT().CheckEmail(mock.Anything, "ana@example.com").Return(true, nil)

	rec, env = serve(t, h.CheckEmail, http.MethodPost, "/api/auth/check-email", `{"email":"ana@example.com"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeData[CheckEmailResponse](t, env).Exists)

	rec, env = serve(t, h.CheckEmail, http.MethodPost, "/api/auth/check-email", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}
