package commands_test

import (
	"errors"
	"testing"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		customerActor(t),
		"O1",
		mustParty(t, "Ann", "ann@example.com", "111"),
		mustParty(t, "Grill", "grill@example.com", "222"),
		lineItems(t),
		billing(t),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.projections.On("Presence", ctx, mock.Anything).Return(projection.Presence{}, nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.projections.On("SaveRestaurant", ctx, mock.MatchedBy(func(v projection.RestaurantView) bool {
			return v.Status == order.Placed && v.StatusText == "Pending"
		})).Return(nil).Once(),
		uow.projections.On("SaveCustomer", ctx, mock.MatchedBy(func(v projection.CustomerView) bool {
			return v.StatusText == "Order yet to be accepted by restaurant"
		})).Return(nil).Once(),
		uow.projections.On("Remove", ctx, projection.DeliveryCandidate, mock.Anything).Return(nil).Once(),
		uow.projections.On("Remove", ctx, projection.DeliveryAssigned, mock.Anything).Return(nil).Once(),
		uow.outbox.On("Add", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.RoutingKey == order.PlacedRoutingKey
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	observer := newRecordingObserver()
	h := commands.NewCreateOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, observer))

	err := h.Handle(ctx, newCreateOrderCommand(t))

	require.NoError(t, err)
	uow.assertAll(t)
	assert.Equal(t, []error{nil}, observer.transitions["create"])
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{newMockUoW()}, fixedClock, nil))

	err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_ProjectionAlreadyExists(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.projections.On("Presence", ctx, mock.Anything).
		Return(projection.Presence{projection.Customer: true}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))

	err := h.Handle(ctx, newCreateOrderCommand(t))

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.assertAll(t)
	uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateOrder(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.projections.On("Presence", ctx, mock.Anything).Return(projection.Presence{}, nil).Once()
	uow.orders.On("Add", ctx, mock.Anything).
		Return(errs.NewObjectAlreadyExistsError("orderId", "O1")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))

	err := h.Handle(ctx, newCreateOrderCommand(t))

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.projections.On("Presence", ctx, mock.Anything).Return(projection.Presence{}, nil).Once()
	uow.orders.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.expectSync()
	uow.outbox.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))

	err := h.Handle(ctx, newCreateOrderCommand(t))

	require.EqualError(t, err, "commit error")
	uow.assertAll(t)
}
