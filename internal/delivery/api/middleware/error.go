package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"gaia/internal/delivery/api/response"
	deliverycontext "gaia/internal/delivery/context"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnhandled(c, err)
		}
		_ = response.HandleAppError(c, appErr)

		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		_ = response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			fieldErrors(validationErrs),
		)

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	m.logUnhandled(c, err)

	// For 500 errors, do not expose internal error details to the client
	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), "Internal server error, please try again later")
}

func (m *ErrorMiddleware) logUnhandled(c echo.Context, err error) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.String("error", fmt.Sprintf("%+v", err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

// FieldError is one failed validation rule, keyed by the JSON field name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func fieldErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}

	return out
}
