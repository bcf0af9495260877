package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// KeyUserID is the key under which the authenticated member's ID is stored.
const KeyUserID ContextKey = "userID"

// SetUserID records the authenticated caller on both the echo context and the request context.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)
	c.SetRequest(c.Request().WithContext(WithUserID(c.Request().Context(), userID)))
}

// GetUserID returns the authenticated caller. ok is false on anonymous requests.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyUserID)).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}

// WithUserID returns a new context carrying userID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, KeyUserID, userID)
}

// UserIDFromContext returns the caller stored by WithUserID.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(KeyUserID).(uuid.UUID)

	return id, ok && id != uuid.Nil
}
