package commands

import (
	"context"
	"errors"
	"fmt"

	"eatify/internal/core/ports"
)

// RelayOutboxCommandHandler publishes due outbox messages. A published message is deleted,
// a failed one is rescheduled with exponential backoff until its retries run out.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) RelayOutboxCommandHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return RelayOutboxCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

// Handle only fails on storage errors; publish failures are counted in the report.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayReport, error) {
	var report RelayReport
	if err := cmd.Validate(); err != nil {
		return report, err
	}

	repo := h.uowFactory.Create().OutboxRepository()

	messages, err := repo.Pending(ctx, h.clock.Now().UTC(), cmd.BatchSize())
	if err != nil {
		return report, err
	}

	var failures []error
	for _, msg := range messages {
		if pubErr := h.publisher.Publish(ctx, msg.RoutingKey, msg.Payload); pubErr != nil {
			report.Failed++
			if err = repo.SaveRetry(ctx, msg.Failed(pubErr, h.clock.Now().UTC())); err != nil {
				failures = append(failures, fmt.Errorf("save retry of %s: %w", msg.ID, err))
			}
			continue
		}

		report.Published++
		if err = repo.Delete(ctx, msg.ID); err != nil {
			failures = append(failures, fmt.Errorf("delete %s: %w", msg.ID, err))
		}
	}

	return report, errors.Join(failures...)
}
