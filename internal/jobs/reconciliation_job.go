package jobs

import (
	"context"
	"log/slog"
	"time"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/kernel"
)

const ReconciliationJobName = "reconciliation_job"

// ReconciliationJob finishes interrupted archivals and repairs drifted projections.
type ReconciliationJob struct {
	*scheduledJob

	handler  commands.ReconcileOrdersCommandHandler
	limit    int
	recorder Recorder
}

func NewReconciliationJob(
	handler commands.ReconcileOrdersCommandHandler,
	schedule string,
	limit int,
	recorder Recorder,
	logger *slog.Logger,
) *ReconciliationJob {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	j := &ReconciliationJob{handler: handler, limit: limit, recorder: recorder}
	j.scheduledJob = newScheduledJob(ReconciliationJobName, schedule, 2*time.Minute, logger, j.RunOnce)
	return j
}

func (j *ReconciliationJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewReconcileOrdersCommand(kernel.SystemActor(), j.limit)
	if err != nil {
		return err
	}

	report, err := j.handler.Handle(ctx, cmd)
	j.recorder.ObserveJobRun(ReconciliationJobName, err)
	j.recorder.AddJobItems(ReconciliationJobName, "archived", report.Archived)
	j.recorder.AddJobItems(ReconciliationJobName, "repaired", report.Repaired)
	j.recorder.AddJobItems(ReconciliationJobName, "orphans_removed", report.OrphansRemoved)

	if report != (commands.ReconcileReport{}) {
		j.logger.InfoContext(ctx, "Reconciliation changed state",
			"archived", report.Archived,
			"repaired", report.Repaired,
			"orphans_removed", report.OrphansRemoved,
		)
	}
	return err
}
