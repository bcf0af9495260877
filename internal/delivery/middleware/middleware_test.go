package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gaia/config"
	deliverycontext "gaia/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "client id is reused", header: "client-req-7", wantSame: true},
		{name: "missing id is generated"},
		{name: "oversized id is replaced", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			mw := NewRequestIDMiddleware(newJSONLogger(&buf))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := mw.Process(func(c echo.Context) error {
				seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				deliverycontext.GetLogger(c.Request().Context()).Info("inside")

				return nil
			})(c)

			require.NoError(t, err)
			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Equal(t, tt.wantSame, seen == tt.header)
			assert.Contains(t, buf.String(), `"request_id":"`+seen+`"`)
		})
	}
}

func TestLoggerMiddleware_LogsRenderedStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := &config.Config{}
	mw := NewLoggerMiddleware(newJSONLogger(&buf), cfg)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users?page=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw.Handle(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.Equal(t, "page=2", line["query"])
}

func TestLoggerMiddleware_SuccessLevelFollowsDebugFlag(t *testing.T) {
	t.Parallel()

	for _, debug := range []bool{false, true} {
		var buf bytes.Buffer
		cfg := &config.Config{}
		cfg.Env.Debug = debug
		mw := NewLoggerMiddleware(newJSONLogger(&buf), cfg)

		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())
		require.NoError(t, mw.Handle(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c))

		want := "DEBUG"
		if debug {
			want = "INFO"
		}
		assert.Contains(t, buf.String(), `"level":"`+want+`"`)
	}
}
