package commands_test

import (
	"errors"
	"testing"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	placed := orderIn(t, order.Placed)

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(placed, nil).Once(),
		uow.orders.On("Update", mock.Anything, placed, order.Placed).Return(nil).Once(),
		uow.projections.On("SaveRestaurant", mock.Anything, mock.MatchedBy(func(v projection.RestaurantView) bool {
			return v.StatusText == "Accepted"
		})).Return(nil).Once(),
		uow.projections.On("SaveCustomer", mock.Anything, mock.MatchedBy(func(v projection.CustomerView) bool {
			return v.StatusText == "Order accepted by restaurant"
		})).Return(nil).Once(),
		uow.projections.On("SaveDeliveryCandidate", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.projections.On("Remove", mock.Anything, projection.DeliveryAssigned, kernel.OrderID("O1")).Return(nil).Once(),
		uow.outbox.On("Add", mock.Anything, mock.MatchedBy(func(m outbox.Message) bool {
			return m.RoutingKey == "order.accepted"
		})).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	h := commands.NewAcceptOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))
	cmd, err := commands.NewAcceptOrderCommand(restaurantActor(t), "O1")
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, placed.Status())
	assert.Equal(t, int64(2), placed.Version())
	uow.assertAll(t)
}

func TestAcceptOrderCommandHandler_Handle_ForeignRestaurant(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.Placed), nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h := commands.NewAcceptOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))
	cmd, _ := commands.NewAcceptOrderCommand(mustActor(t, kernel.RoleRestaurant, "other@example.com"), "O1")

	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.assertAll(t)
}

func TestAcceptOrderCommandHandler_Handle_Replay(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.Accepted), nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h := commands.NewAcceptOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))
	cmd, _ := commands.NewAcceptOrderCommand(restaurantActor(t), "O1")

	err := h.Handle(ctx, cmd)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.True(t, transitionErr.AlreadyApplied)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.Placed), nil).Once()
	uow.orders.On("Update", mock.Anything, mock.Anything, order.Placed).
		Return(order.ErrConcurrentModification).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	observer := newRecordingObserver()
	h := commands.NewAcceptOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, observer))
	cmd, _ := commands.NewAcceptOrderCommand(restaurantActor(t), "O1")

	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Len(t, observer.transitions["accept"], 1)
	assert.Error(t, observer.transitions["accept"][0])
	uow.assertAll(t)
}

func TestAssignPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	accepted := orderIn(t, order.Accepted)

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(accepted, nil).Once(),
		uow.orders.On("Update", mock.Anything, accepted, order.Accepted).Return(nil).Once(),
		uow.projections.On("SaveRestaurant", mock.Anything, mock.MatchedBy(func(v projection.RestaurantView) bool {
			return v.DeliveryPartnerName == "Pat"
		})).Return(nil).Once(),
		uow.projections.On("SaveCustomer", mock.Anything, mock.MatchedBy(func(v projection.CustomerView) bool {
			return v.DeliveryPartnerContact == "333"
		})).Return(nil).Once(),
		uow.projections.On("Remove", mock.Anything, projection.DeliveryCandidate, kernel.OrderID("O1")).Return(nil).Once(),
		uow.projections.On("SaveDeliveryAssigned", mock.Anything, mock.MatchedBy(func(v projection.DeliveryAssignedView) bool {
			return v.PartnerEmail == "pat@example.com"
		})).Return(nil).Once(),
		uow.outbox.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	h := commands.NewAssignPartnerCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))
	cmd, err := commands.NewAssignPartnerCommand(partnerActor(t), "O1", partner(t))
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.DeliveryAssigned, accepted.Status())
	uow.assertAll(t)
}

func TestNewAssignPartnerCommand_Validation(t *testing.T) {
	t.Run("partner must be the actor", func(t *testing.T) {
		_, err := commands.NewAssignPartnerCommand(partnerActor(t), "O1", mustParty(t, "Zed", "zed@example.com", "9"))
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("phone is required", func(t *testing.T) {
		_, err := commands.NewAssignPartnerCommand(partnerActor(t), "O1", mustParty(t, "Pat", "pat@example.com", ""))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("restaurant cannot claim", func(t *testing.T) {
		p := mustParty(t, "Grill", "grill@example.com", "222")
		_, err := commands.NewAssignPartnerCommand(restaurantActor(t), "O1", p)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLifecycle_ProjectionWriteFailureIsNotCommitted(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.Placed), nil).Once()
	uow.orders.On("Update", mock.Anything, mock.Anything, order.Placed).Return(nil).Once()
	uow.projections.On("SaveRestaurant", mock.Anything, mock.Anything).Return(nil).Once()
	uow.projections.On("SaveCustomer", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h := commands.NewAcceptOrderCommandHandler(commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil))
	cmd, _ := commands.NewAcceptOrderCommand(restaurantActor(t), "O1")

	err := h.Handle(ctx, cmd)

	require.ErrorContains(t, err, "disk full")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
