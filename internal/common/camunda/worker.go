package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/metrics"
	"github.com/janhavi-28/SEO-Agent/internal/common/observability"
)

// JobHandler processes one activated job and completes or fails it.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType. Every Handle call runs inside
// a span, with job duration and in-flight count recorded around it. obs may
// be nil.
func NewWorker(
	client zbc.Client,
	taskType string,
	maxJobsActive int,
	timeout time.Duration,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) *CamundaWorker {
	log = log.With(map[string]interface{}{"taskType": taskType})

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(client worker.JobClient, job entities.Job) {
			runJob(taskType, handler, obs, client, job)
		}).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	log.Info("worker started", map[string]interface{}{"maxJobsActive": maxJobsActive})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

// Job outcomes, taken from the terminal command the handler issued.
const (
	JobOutcomeCompleted = "completed"
	JobOutcomeFailed    = "failed"
	JobOutcomeBPMNError = "bpmn_error"
	JobOutcomeNone      = "none"
)

func runJob(taskType string, handler JobHandler, obs *observability.Observability, client worker.JobClient, job entities.Job) string {
	ctx, span := obs.StartSpan(context.Background(), "job "+taskType,
		attribute.Int64("zeebe.job_key", job.Key),
		attribute.Int64("zeebe.process_instance_key", job.ProcessInstanceKey),
	)
	defer span.End()

	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()

	tracked := &outcomeClient{JobClient: client, outcome: JobOutcomeNone}
	handler.Handle(tracked, job)

	elapsed := time.Since(start)
	metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
	metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
	obs.RecordJobProcessed(ctx, taskType, tracked.outcome)
	obs.RecordJobDuration(ctx, taskType, elapsed, tracked.outcome)
	span.SetAttributes(attribute.String("zeebe.job_outcome", tracked.outcome))
	return tracked.outcome
}

// outcomeClient notes the last terminal command requested for a job.
type outcomeClient struct {
	worker.JobClient
	outcome string
}

func (c *outcomeClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.outcome = JobOutcomeCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.outcome = JobOutcomeFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.outcome = JobOutcomeBPMNError
	return c.JobClient.NewThrowErrorCommand()
}

func (w *CamundaWorker) TaskType() string { return w.taskType }

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// CompleteJob sends output as the job's result variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, taskType string, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
	log.Info("job completed", map[string]interface{}{"jobKey": job.Key})
}
