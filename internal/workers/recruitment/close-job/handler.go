// internal/workers/recruitment/close-job/handler.go
package closejob

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/recruitment"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "close-job"
)

type Service interface {
	CloseJob(ctx context.Context, jobID string) (*recruitment.CloseJobResult, error)
}

type Handler struct {
	config  *Config
	service Service
	runner  *camunda.JobRunner
	logger  logger.Logger
}

func NewHandler(config *Config, service Service, runner *camunda.JobRunner, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		service: service,
		runner:  runner,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, camunda.Task{Type: TaskType, Timeout: h.config.Timeout}, h.execute)
}

// execute is safe to repeat; a SEARCH_FAILED error leaves the job closed in the
// database and the retry only re-marks the index.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.service.CloseJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("job closed", map[string]interface{}{"jobId": result.JobID})
	return &Output{JobID: result.JobID, Status: string(result.Status)}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
