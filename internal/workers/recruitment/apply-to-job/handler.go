// internal/workers/recruitment/apply-to-job/handler.go
package applytojob

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "apply-to-job"
)

type Service interface {
	Apply(ctx context.Context, studentID, jobID string) (*models.ApplyResult, error)
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.service.Apply(ctx, input.StudentID, input.JobID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("application processed", map[string]interface{}{
		"studentId":     input.StudentID,
		"jobId":         input.JobID,
		"status":        string(result.Outcome),
		"applicationId": result.ApplicationID,
	})

	return &Output{
		Status:        string(result.Outcome),
		ApplicationID: result.ApplicationID,
		TestID:        result.TestID,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
