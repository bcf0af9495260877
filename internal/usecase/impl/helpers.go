package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "gaia/internal/delivery/context"
	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/domain/service"
	"gaia/internal/domain/validation"
	"gaia/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// findUser maps the repository miss onto the user-facing 404.
func findUser(ctx context.Context, repo repository.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// locationFromInput validates a location sample. Nil input yields a nil location and no error;
// a sample with missing or out-of-range coordinates is rejected. The timestamp defaults to now.
func locationFromInput(input *usecase.LocationInput, now func() time.Time) (*entity.Location, error) {
	if input == nil {
		return nil, nil
	}
	if !validation.IsValidLocation(input.Latitude, input.Longitude) {
		return nil, domainerrors.ErrInvalidLocation
	}
	if input.Accuracy != nil && *input.Accuracy < 0 {
		return nil, domainerrors.ErrInvalidLocation.WithMessage("Accuracy must not be negative")
	}

	loc := &entity.Location{
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Accuracy:  input.Accuracy,
		Timestamp: now().UTC(),
	}
	if input.Timestamp != nil && !input.Timestamp.IsZero() {
		loc.Timestamp = input.Timestamp.UTC()
	}

	return loc, nil
}

func newMemberEvent(ctx context.Context, eventType string, userID uuid.UUID, now func() time.Time) *service.MemberEvent {
	return &service.MemberEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		UserID:     userID.String(),
		OccurredAt: now().UTC(),
	}
}

// publishMemberEvent is best effort. A nil publisher skips it and a failure is only logged.
func publishMemberEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.MemberEvent) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishMemberEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish member event",
			slog.String("type", event.Type),
			slog.String("userID", event.UserID),
			slog.Any("error", err),
		)
	}
}
