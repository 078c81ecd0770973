package commands_test

import (
	"errors"
	"testing"
	"time"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRelayOutboxCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()

	ok, err := outbox.NewLifecycleMessage("order.accepted", orderIn(t, order.Accepted), kernel.SystemActor(), now)
	require.NoError(t, err)
	failing, err := outbox.NewLifecycleMessage("order.cancelled", orderIn(t, order.Cancelled), kernel.SystemActor(), now)
	require.NoError(t, err)

	uow.outbox.On("Pending", mock.Anything, now, 50).Return([]outbox.Message{ok, failing}, nil).Once()
	uow.outbox.On("Delete", mock.Anything, ok.ID).Return(nil).Once()
	uow.outbox.On("SaveRetry", mock.Anything, mock.MatchedBy(func(m outbox.Message) bool {
		return m.ID == failing.ID && m.RetryCount == 1 && m.LastError == "channel closed" &&
			m.NextRetryAt.Equal(now.Add(30*time.Second))
	})).Return(nil).Once()

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, "order.accepted", ok.Payload).Return(nil).Once()
	publisher.On("Publish", mock.Anything, "order.cancelled", failing.Payload).Return(errors.New("channel closed")).Once()

	h := commands.NewRelayOutboxCommandHandler(MockOutboxUoWFactory{uow}, publisher, fixedClock)
	cmd, err := commands.NewRelayOutboxCommand(50)
	require.NoError(t, err)

	report, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.RelayReport{Published: 1, Failed: 1}, report)
	publisher.AssertExpectations(t)
	uow.outbox.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_PendingError(t *testing.T) {
	uow := newMockUoW()
	uow.outbox.On("Pending", mock.Anything, now, commands.DefaultRelayBatchSize).
		Return(nil, errors.New("db down")).Once()

	h := commands.NewRelayOutboxCommandHandler(MockOutboxUoWFactory{uow}, new(MockPublisher), fixedClock)
	cmd, _ := commands.NewRelayOutboxCommand(0)

	_, err := h.Handle(t.Context(), cmd)

	require.EqualError(t, err, "db down")
}
