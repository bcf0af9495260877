package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"gaia/internal/delivery/api/response"
	deliverycontext "gaia/internal/delivery/context"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves profile, location, charter and directory endpoints.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}

func pathUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithMessage("Invalid user ID")
	}

	return id, nil
}

// GetCurrentUser returns the caller's own profile.
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserEnvelope{User: toUserResponse(user)}, "Current user profile retrieved successfully")
}

// GetUser returns any member by ID.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserEnvelope{User: toUserResponse(user)}, "User retrieved successfully")
}

// UpdateProfile edits the caller's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), userID, req.toUpdate())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserEnvelope{User: toUserResponse(user)}, "Profile updated successfully")
}

// UpdateLocation replaces the caller's stored location.
func (h *UserHandler) UpdateLocation(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid location input")
	}

	user, err := h.userUC.UpdateLocation(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserEnvelope{User: toUserResponse(user)}, "Location updated successfully")
}

// SignEarthCharter makes the caller a Planetarian.
func (h *UserHandler) SignEarthCharter(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.SignEarthCharter(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserEnvelope{User: toUserResponse(user)}, "Earth Charter signed successfully")
}

// NearbyQuery is the radius search input.
type NearbyQuery struct {
	RadiusKm float64 `query:"radiusKm" validate:"gte=0,lte=20000"`
}

// Nearby lists members around the caller's stored location.
func (h *UserHandler) Nearby(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var q NearbyQuery
	if err := echo.QueryParamsBinder(c).Float64("radiusKm", &q.RadiusKm).BindError(); err != nil {
		return response.BindingError(c, "radiusKm must be a number")
	}
	if err := c.Validate(&q); err != nil {
		return errors.WithStack(err)
	}

	found, err := h.userUC.Nearby(c.Request().Context(), userID, q.RadiusKm)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]NearbyUserResponse, 0, len(found))
	for _, n := range found {
		out = append(out, NearbyUserResponse{User: toUserResponse(n.User), DistanceKm: n.DistanceKm})
	}

	return response.Success(c, http.StatusOK, map[string]any{"users": out}, "Nearby users retrieved successfully")
}

// ListUsersQuery is the directory listing input.
type ListUsersQuery struct {
	Page               int    `query:"page" validate:"gte=0"`
	Limit              int    `query:"limit" validate:"gte=0"`
	SortBy             string `query:"sortBy"`
	SortOrder          string `query:"sortOrder"`
	Search             string `query:"search" validate:"max=100"`
	Gender             string `query:"gender"`
	EarthCharterSigned string `query:"earthCharterSigned" validate:"omitempty,boolean"`
}

// ListUsers pages through the member directory.
func (h *UserHandler) ListUsers(c echo.Context) error {
	var q ListUsersQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("sortBy", &q.SortBy).
		String("sortOrder", &q.SortOrder).
		String("search", &q.Search).
		String("gender", &q.Gender).
		String("earthCharterSigned", &q.EarthCharterSigned).
		BindError()
	if err != nil {
		return response.BindingError(c, "Invalid listing parameters")
	}
	if err := c.Validate(&q); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.ListUsersInput{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Search:    q.Search,
		Gender:    q.Gender,
	}
	if q.EarthCharterSigned != "" {
		signed, _ := strconv.ParseBool(q.EarthCharterSigned)
		input.EarthCharterSigned = &signed
	}

	output, err := h.userUC.ListUsers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserListResponse{
		Users: toUserResponses(output.Users),
		Pagination: PaginationResponse{
			CurrentPage: output.Pagination.CurrentPage,
			TotalPages:  output.Pagination.TotalPages,
			TotalUsers:  output.Pagination.TotalUsers,
			HasNextPage: output.Pagination.HasNextPage,
			HasPrevPage: output.Pagination.HasPrevPage,
		},
	}, "Users retrieved successfully")
}

// DeleteUser removes a member.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// Stats aggregates the member base.
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.userUC.Stats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]StatsResponse{
		"stats": {
			TotalUsers:         stats.TotalUsers,
			EarthCharterSigned: stats.EarthCharterSigned,
			MaleUsers:          stats.MaleUsers,
			FemaleUsers:        stats.FemaleUsers,
		},
	}, "Statistics retrieved successfully")
}
