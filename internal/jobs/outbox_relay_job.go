package jobs

import (
	"context"
	"log/slog"
	"time"

	"eatify/internal/core/application/usecases/commands"
)

const OutboxRelayJobName = "outbox_relay_job"

// OutboxRelayJob publishes committed lifecycle events to the broker.
type OutboxRelayJob struct {
	*scheduledJob

	handler   commands.RelayOutboxCommandHandler
	batchSize int
	recorder  Recorder
}

func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	schedule string,
	batchSize int,
	recorder Recorder,
	logger *slog.Logger,
) *OutboxRelayJob {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	j := &OutboxRelayJob{handler: handler, batchSize: batchSize, recorder: recorder}
	j.scheduledJob = newScheduledJob(OutboxRelayJobName, schedule, 30*time.Second, logger, j.RunOnce)
	return j
}

// RunOnce relays one batch. Per-message publish failures are rescheduled by the
// handler and only show up in the report.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	report, err := j.handler.Handle(ctx, cmd)
	j.recorder.ObserveJobRun(OutboxRelayJobName, err)
	j.recorder.AddJobItems(OutboxRelayJobName, "published", report.Published)
	j.recorder.AddJobItems(OutboxRelayJobName, "failed", report.Failed)
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		j.logger.WarnContext(ctx, "Some events were not published",
			"published", report.Published, "failed", report.Failed)
	}
	return nil
}
