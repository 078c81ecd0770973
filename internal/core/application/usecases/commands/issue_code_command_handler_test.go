package commands_test

import (
	"errors"
	"testing"
	"time"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssueCodeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	assigned := orderIn(t, order.DeliveryAssigned)
	codes := new(MockCodeStore)
	notifier := new(MockNotifier)

	var stored verification.Code
	uow.expectTx()
	uow.expectSync()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(assigned, nil).Once()
	uow.orders.On("Update", mock.Anything, assigned, order.DeliveryAssigned).Return(nil).Once()
	uow.outbox.On("Add", mock.Anything, mock.MatchedBy(func(m outbox.Message) bool {
		return m.RoutingKey == "order.code_issued"
	})).Return(nil).Once()
	codes.On("Put", mock.Anything, mock.AnythingOfType("verification.Code")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(verification.Code) }).
		Return(nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.CodeNotification) bool {
		return n.Recipient == "ann@example.com" && n.Code == stored.Digits()
	})).Return(nil).Once()

	h := commands.NewIssueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, notifier, 0)
	cmd, err := commands.NewIssueCodeCommand(partnerActor(t), "O1")
	require.NoError(t, err)

	issued, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, now.Add(verification.DefaultTTL), issued.ExpiresAt)
	assert.Equal(t, order.CodeIssued, assigned.Status())
	assert.Equal(t, kernel.OrderID("O1"), stored.OrderID())
	codes.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.assertAll(t)
}

func TestIssueCodeCommandHandler_Handle_SecondIssueIsRejected(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectTx()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.CodeIssued), nil).Once()
	codes := new(MockCodeStore)

	h := commands.NewIssueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, new(MockNotifier), time.Minute)
	cmd, _ := commands.NewIssueCodeCommand(partnerActor(t), "O1")

	_, err := h.Handle(ctx, cmd)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.True(t, transitionErr.AlreadyApplied)
	codes.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestIssueCodeCommandHandler_Handle_CommitFailureStoresNoCode(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectSync()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(errors.New("connection reset")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.DeliveryAssigned), nil).Once()
	uow.orders.On("Update", mock.Anything, mock.Anything, order.DeliveryAssigned).Return(nil).Once()
	uow.outbox.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	codes := new(MockCodeStore)
	notifier := new(MockNotifier)

	h := commands.NewIssueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, notifier, time.Minute)
	cmd, _ := commands.NewIssueCodeCommand(partnerActor(t), "O1")

	_, err := h.Handle(ctx, cmd)

	require.ErrorContains(t, err, "connection reset")
	codes.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	codes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestReissueCodeCommandHandler_Handle_CommitFailureKeepsPreviousCode(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectSync()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(errors.New("connection reset")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.CodeIssued), nil).Once()
	uow.orders.On("Update", mock.Anything, mock.Anything, order.CodeIssued).Return(nil).Once()
	uow.outbox.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	codes := new(MockCodeStore)

	h := commands.NewReissueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, new(MockNotifier), time.Minute)
	cmd, _ := commands.NewReissueCodeCommand(partnerActor(t), "O1")

	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	codes.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	codes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestIssueCodeCommandHandler_Handle_StoreFailureIsPartiallyApplied(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectTx()
	uow.expectSync()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.DeliveryAssigned), nil).Once()
	uow.orders.On("Update", mock.Anything, mock.Anything, order.DeliveryAssigned).Return(nil).Once()
	uow.outbox.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	codes := new(MockCodeStore)
	codes.On("Put", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	notifier := new(MockNotifier)

	h := commands.NewIssueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, notifier, time.Minute)
	cmd, _ := commands.NewIssueCodeCommand(partnerActor(t), "O1")

	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPartiallyApplied)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestIssueCodeCommandHandler_Handle_NotifyFailureWithdrawsCode(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectTx()
	uow.expectSync()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(orderIn(t, order.DeliveryAssigned), nil).Once()
	uow.orders.On("Update", mock.Anything, mock.Anything, order.DeliveryAssigned).Return(nil).Once()
	uow.outbox.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	codes := new(MockCodeStore)
	codes.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	codes.On("Delete", mock.Anything, kernel.OrderID("O1")).Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewIssueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, notifier, time.Minute)
	cmd, _ := commands.NewIssueCodeCommand(partnerActor(t), "O1")

	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPartiallyApplied)
	codes.AssertExpectations(t)
}

func TestReissueCodeCommandHandler_Handle_CountsReissue(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	issued := orderIn(t, order.CodeIssued)
	uow.expectTx()
	uow.expectSync()
	uow.orders.On("Get", mock.Anything, kernel.OrderID("O1")).Return(issued, nil).Once()
	uow.orders.On("Update", mock.Anything, issued, order.CodeIssued).Return(nil).Once()
	uow.outbox.On("Add", mock.Anything, mock.MatchedBy(func(m outbox.Message) bool {
		return m.RoutingKey == "order.code_reissued"
	})).Return(nil).Once()

	codes := new(MockCodeStore)
	codes.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewReissueCodeCommandHandler(
		commands.NewLifecycle(MockUoWFactory{uow}, fixedClock, nil), codes, notifier, time.Minute)
	cmd, err := commands.NewReissueCodeCommand(partnerActor(t), "O1")
	require.NoError(t, err)

	issuedCode, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), issuedCode.ExpiresAt)
	assert.Equal(t, 1, issued.CodeReissues())
	assert.Equal(t, order.CodeIssued, issued.Status())
	uow.assertAll(t)
}
