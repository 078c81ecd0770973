package commands_test

import (
	"fmt"
	"testing"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReconcileHandler(uow *MockUoW) commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(
		MockUoWFactory{uow},
		commands.NewArchiveOrderCommandHandler(MockUoWFactory{uow}, fixedClock),
	)
}

func TestNewReconcileOrdersCommand(t *testing.T) {
	cmd, err := commands.NewReconcileOrdersCommand(kernel.SystemActor(), 0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultReconcileLimit, cmd.Limit())

	_, err = commands.NewReconcileOrdersCommand(restaurantActor(t), 10)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestReconcileOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectTx()

	delivered := orderIn(t, order.Delivered)
	accepted := orderWithIDIn(t, "O2", order.Accepted)

	uow.orders.On("ListTerminalUnarchived", mock.Anything, 10).Return([]kernel.OrderID{"O1"}, nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(delivered, nil).Once()
	uow.history.On("Append", mock.Anything, mock.Anything).Return(true, nil).Times(3)
	for _, kind := range projection.Kinds() {
		uow.projections.On("Remove", mock.Anything, kind, kernel.OrderID("O1")).Return(nil).Once()
	}
	uow.orders.On("Update", mock.Anything, delivered, order.Delivered).Return(nil).Once()

	uow.projections.On("ListOrderIDs", mock.Anything, 10).Return([]kernel.OrderID{"O2", "GHOST"}, nil).Once()
	uow.orders.On("ListActiveIDs", mock.Anything, 10).Return([]kernel.OrderID{"O2"}, nil).Once()

	// O2 is ACCEPTED but lost its customer projection.
	uow.projections.On("Presence", mock.Anything, kernel.OrderID("O2")).
		Return(projection.Presence{projection.Restaurant: true, projection.DeliveryCandidate: true}, nil).Once()
	uow.orders.On("GetForUpdate", mock.Anything, kernel.OrderID("O2")).Return(accepted, nil).Once()
	uow.projections.On("SaveRestaurant", mock.Anything, mock.Anything).Return(nil).Once()
	uow.projections.On("SaveCustomer", mock.Anything, mock.Anything).Return(nil).Once()
	uow.projections.On("SaveDeliveryCandidate", mock.Anything, mock.Anything).Return(nil).Once()
	uow.projections.On("Remove", mock.Anything, projection.DeliveryAssigned, kernel.OrderID("O2")).Return(nil).Once()

	// GHOST has a projection but no order.
	uow.projections.On("Presence", mock.Anything, kernel.OrderID("GHOST")).
		Return(projection.Presence{projection.Restaurant: true}, nil).Once()
	uow.orders.On("GetForUpdate", mock.Anything, kernel.OrderID("GHOST")).
		Return(nil, errs.NewObjectNotFoundError("orderId", "GHOST")).Once()
	uow.projections.On("Remove", mock.Anything, projection.Restaurant, kernel.OrderID("GHOST")).Return(nil).Once()

	cmd, err := commands.NewReconcileOrdersCommand(kernel.SystemActor(), 10)
	require.NoError(t, err)

	report, err := newReconcileHandler(uow).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.ReconcileReport{Archived: 1, Repaired: 1, OrphansRemoved: 1}, report)
	assert.True(t, delivered.IsArchived())
	uow.assertAll(t)
}

func TestReconcileOrdersCommandHandler_Handle_NothingToDo(t *testing.T) {
	uow := newMockUoW()
	uow.expectTx()
	placed := orderIn(t, order.Placed)

	uow.orders.On("ListTerminalUnarchived", mock.Anything, 5).Return(nil, nil).Once()
	uow.projections.On("ListOrderIDs", mock.Anything, 5).Return([]kernel.OrderID{"O1"}, nil).Once()
	uow.orders.On("ListActiveIDs", mock.Anything, 5).Return([]kernel.OrderID{"O1"}, nil).Once()
	uow.projections.On("Presence", mock.Anything, kernel.OrderID("O1")).
		Return(projection.Presence{projection.Restaurant: true, projection.Customer: true}, nil).Once()
	uow.orders.On("GetForUpdate", mock.Anything, kernel.OrderID("O1")).Return(placed, nil).Once()

	cmd, _ := commands.NewReconcileOrdersCommand(kernel.SystemActor(), 5)

	report, err := newReconcileHandler(uow).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.ReconcileReport{}, report)
	uow.projections.AssertNotCalled(t, "SaveRestaurant", mock.Anything, mock.Anything)
}

func TestReconcileOrdersCommandHandler_Handle_ConcurrentTransitionWins(t *testing.T) {
	uow := newMockUoW()
	uow.expectSync()
	accepted := orderWithIDIn(t, "O2", order.Accepted)

	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).
		Return(fmt.Errorf("%w: order O2 moved on", order.ErrConcurrentModification)).Once()

	uow.orders.On("ListTerminalUnarchived", mock.Anything, 5).Return(nil, nil).Once()
	uow.projections.On("ListOrderIDs", mock.Anything, 5).Return([]kernel.OrderID{"O2"}, nil).Once()
	uow.orders.On("ListActiveIDs", mock.Anything, 5).Return([]kernel.OrderID{"O2"}, nil).Once()
	uow.projections.On("Presence", mock.Anything, kernel.OrderID("O2")).
		Return(projection.Presence{projection.Restaurant: true}, nil).Once()
	uow.orders.On("GetForUpdate", mock.Anything, kernel.OrderID("O2")).Return(accepted, nil).Once()

	cmd, _ := commands.NewReconcileOrdersCommand(kernel.SystemActor(), 5)

	report, err := newReconcileHandler(uow).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.ReconcileReport{}, report)
	uow.orders.AssertNotCalled(t, "Get", mock.Anything, kernel.OrderID("O2"))
}
