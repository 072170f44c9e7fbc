// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"recruitment-workers/internal/common/config"
	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/common/observability"
	"recruitment-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultJobTimeout = 30 * time.Second
	reportTimeout     = 10 * time.Second
)

// JobHandler is implemented by every task worker.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobRunner is the shared job lifecycle: validate variables, decode, execute under a deadline,
// then complete the job or report the error to the broker.
type JobRunner struct {
	validator *validation.Validator
	errors    *errors.ErrorHandler
	obs       *observability.Observability
	retry     *RetryConfig
	logger    logger.Logger
}

// NewJobRunner builds a runner. validator and obs may be nil.
func NewJobRunner(validator *validation.Validator, obs *observability.Observability, log logger.Logger) *JobRunner {
	return &JobRunner{
		validator: validator,
		errors:    errors.NewErrorHandler(log),
		obs:       obs,
		retry:     DefaultRetryConfig,
		logger:    log,
	}
}

// Task identifies the job being run.
type Task struct {
	Type    string
	Timeout time.Duration
}

// Run processes one job. fn receives the decoded variables; its output becomes the job's
// result variables.
func Run[I any, O any](r *JobRunner, client worker.JobClient, job entities.Job, task Task, fn func(context.Context, *I) (*O, error)) {
	start := time.Now()
	log := r.logger.WithFields(map[string]interface{}{
		"taskType":    task.Type,
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	log.Info("processing job", nil)

	metrics.WorkerJobsActive.WithLabelValues(task.Type).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(task.Type).Dec()

	timeout := task.Timeout
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ctx, end := r.startSpan(ctx, task.Type, job.Key)

	output, err := execute(ctx, r.validator, task.Type, job.Variables, fn)
	if err != nil {
		end(err)
		r.fail(client, job, task, err, time.Since(start))
		return
	}
	end(nil)

	reportCtx, cancelReport := context.WithTimeout(context.Background(), reportTimeout)
	defer cancelReport()
	sendErr := WithRetry(reportCtx, r.retry, "complete job", func(ctx context.Context) error {
		cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
		if err != nil {
			return err
		}
		_, err = cmd.Send(ctx)
		return err
	})
	if sendErr != nil {
		log.Error("failed to send complete job command", map[string]interface{}{"error": sendErr.Error()})
		r.record(task.Type, "send_failed", time.Since(start))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(task.Type).Inc()
	r.record(task.Type, "completed", time.Since(start))
	log.Info("job completed successfully", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// execute validates and decodes the variables before calling fn.
func execute[I any, O any](ctx context.Context, v *validation.Validator, taskType, variables string, fn func(context.Context, *I) (*O, error)) (*O, error) {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}
	if v != nil {
		if err := v.ValidateJSON(taskType, variables).AsError(); err != nil {
			return nil, err
		}
	}

	var input I
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewValidationError("decode variables: " + err.Error())
	}
	output, err := fn(ctx, &input)
	if err != nil {
		return nil, err
	}
	if output == nil {
		return nil, errors.NewInternalError(fmt.Errorf("%s returned no output", taskType))
	}
	return output, nil
}

func (r *JobRunner) fail(client worker.JobClient, job entities.Job, task Task, err error, elapsed time.Duration) {
	code := errors.ErrCodeInternal
	if stdErr, ok := errors.AsStandardError(err); ok {
		code = stdErr.Code
	}
	metrics.WorkerJobsFailed.WithLabelValues(task.Type, string(code)).Inc()
	r.record(task.Type, "failed", elapsed)

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()
	r.errors.HandleJobError(ctx, client, job, err)
}

func (r *JobRunner) record(taskType, status string, elapsed time.Duration) {
	metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
	if r.obs == nil {
		return
	}
	ctx := context.Background()
	r.obs.RecordJobProcessed(ctx, taskType, status)
	r.obs.RecordJobDuration(ctx, taskType, elapsed, status)
}

// startSpan returns a context carrying the job span and a function that ends it.
func (r *JobRunner) startSpan(ctx context.Context, taskType string, jobKey int64) (context.Context, func(error)) {
	if r.obs == nil {
		return ctx, func(error) {}
	}
	ctx, span := r.obs.StartSpan(ctx, taskType, jobKey)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// StartWorker opens a job worker for taskType when it is enabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	builder := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle)
	if wcfg.MaxJobsActive > 0 {
		builder = builder.MaxJobsActive(wcfg.MaxJobsActive)
	}
	if timeout := wcfg.TimeoutDuration(); timeout > 0 {
		builder = builder.Timeout(timeout)
	}
	jobWorker := builder.Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return jobWorker
}
