package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Recorder receives job outcomes. *metrics.Metrics implements it.
type Recorder interface {
	ObserveJobRun(job string, err error)
	AddJobItems(job, item string, n int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveJobRun(string, error)     {}
func (noopRecorder) AddJobItems(string, string, int) {}

// scheduledJob runs one function on a cron schedule. Runs never overlap: a run still in
// progress when the next tick fires makes that tick a no-op.
type scheduledJob struct {
	name     string
	schedule string
	timeout  time.Duration
	run      func(ctx context.Context) error

	cron   *cron.Cron
	logger *slog.Logger
}

func newScheduledJob(
	name, schedule string,
	timeout time.Duration,
	logger *slog.Logger,
	run func(ctx context.Context) error,
) *scheduledJob {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", name)

	return &scheduledJob{
		name:     name,
		schedule: schedule,
		timeout:  timeout,
		run:      run,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

func (j *scheduledJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a run in progress to finish.
func (j *scheduledJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Job stopped")
}

func (j *scheduledJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.run(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Job failed", "error", err)
	}
}
