package impl

import (
	"context"
	"testing"

	deliverycontext "gaia/internal/delivery/context"
	"gaia/internal/domain/entity"
	"gaia/internal/domain/service"
	mockSvc "gaia/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_PublishesEvent(t *testing.T) {
	fx := createTestAuthService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	fx.service.publisher = publisher
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	id := uuid.New()

	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) { user.ID = id }).
		Return(nil)
	fx.tokenService.EXPECT().IssueToken(id).Return("signed-token", nil)

	var got *service.MemberEvent
	publisher.EXPECT().PublishMemberEvent(ctx, mock.Anything).
		Run(func(_ context.Context, event *service.MemberEvent) { got = event }).
		Return(nil).Once()

	input := validRegisterInput()
	input.GenerationalIdentity = "Millennials"
	_, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, service.EventUserRegistered, got.Type)
	assert.Equal(t, id.String(), got.UserID)
	assert.Equal(t, "req-42", got.RequestID)
	assert.Equal(t, "Millennials", got.GenerationalIdentity)
	assert.False(t, got.HasLocation)
	assert.Equal(t, fixedNow(), got.OccurredAt)
	assert.NotEmpty(t, got.ID)
}

func TestAuthService_Register_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestAuthService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	fx.service.publisher = publisher
	ctx := context.Background()

	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.tokenService.EXPECT().IssueToken(mock.Anything).Return("signed-token", nil)
	publisher.EXPECT().PublishMemberEvent(ctx, mock.Anything).Return(errors.New("broker down")).Once()

	out, err := fx.service.Register(ctx, validRegisterInput())

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
}

func TestUserService_PublishesMemberEvents(t *testing.T) {
	fx := createTestUserService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	fx.service.publisher = publisher
	ctx := context.Background()
	user := newTestUser()
	user.EarthCharterSigned = true

	fx.userRepo.EXPECT().SetEarthCharterSigned(ctx, user.ID).Return(user, nil)
	fx.userRepo.EXPECT().Delete(ctx, user.ID).Return(nil)

	var types []string
	publisher.EXPECT().
		PublishMemberEvent(ctx, mock.MatchedBy(func(event *service.MemberEvent) bool {
			return event.UserID == user.ID.String()
		})).
		Run(func(_ context.Context, event *service.MemberEvent) { types = append(types, event.Type) }).
		Return(nil).Twice()

	_, err := fx.service.SignEarthCharter(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, fx.service.DeleteUser(ctx, user.ID))

	assert.Equal(t, []string{service.EventEarthCharterSigned, service.EventUserDeleted}, types)
}
