package impl

import (
	"io"
	"log/slog"
	"time"

	"gaia/config"
	"gaia/internal/domain/entity"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
			TokenTTL:   time.Hour,
		},
		PasswordStrength: config.DefaultPasswordStrength(),
	}
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:           uuid.MustParse("0190f7a4-0000-7000-8000-0000000000aa"),
		FirstName:    "Ana",
		LastName:     "Lopez",
		Email:        "ana@example.com",
		PasswordHash: "hashed_password",
		Gender:       entity.GenderFemale,
		BirthYear:    1990,
	}
}
