package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	c := newEchoContext()
	generated := GetRequestID(c)
	_, err := uuid.Parse(generated)
	require.NoError(t, err, "missing request id falls back to a uuid")

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	ctx := WithRequestID(context.Background(), "req-2")
	assert.Equal(t, "req-2", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestLoggerOrDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&buf, nil))
	scoped := fallback.With(slog.String("request_id", "abc"))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
	assert.Nil(t, GetLogger(context.Background()))
}

func TestUserID(t *testing.T) {
	t.Parallel()

	c := newEchoContext()
	_, ok := GetUserID(c)
	assert.False(t, ok)

	id := uuid.New()
	SetUserID(c, id)

	got, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, id, got)

	fromCtx, ok := UserIDFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, id, fromCtx)
}
