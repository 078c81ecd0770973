package jobs

import (
	"context"
	"log/slog"
	"time"

	"eatify/internal/core/ports"
)

const CodeSweepJobName = "code_sweep_job"

// CodeSweepJob drops expired verification codes. Expiry is also enforced when a code is
// read, so this only reclaims memory.
type CodeSweepJob struct {
	*scheduledJob

	codes    ports.CodeStore
	clock    ports.Clock
	recorder Recorder
}

func NewCodeSweepJob(
	codes ports.CodeStore,
	clock ports.Clock,
	schedule string,
	recorder Recorder,
	logger *slog.Logger,
) *CodeSweepJob {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	j := &CodeSweepJob{codes: codes, clock: clock, recorder: recorder}
	j.scheduledJob = newScheduledJob(CodeSweepJobName, schedule, 10*time.Second, logger, j.RunOnce)
	return j
}

func (j *CodeSweepJob) RunOnce(ctx context.Context) error {
	removed, err := j.codes.Sweep(ctx, j.clock.Now())
	j.recorder.ObserveJobRun(CodeSweepJobName, err)
	j.recorder.AddJobItems(CodeSweepJobName, "expired_codes", removed)
	return err
}
