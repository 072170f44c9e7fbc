// internal/workers/recruitment/update-job/handler.go
package updatejob

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-job"
)

type Service interface {
	UpdateJob(ctx context.Context, req models.JobUpdateRequest) (*models.JobUpdateResult, error)
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
	result, err := h.service.UpdateJob(ctx, models.JobUpdateRequest{
		CompanyID:     input.CompanyID,
		JobID:         input.JobID,
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		Status:        input.Status,
		MaxApplicants: input.MaxApplicants,
		Test:          input.Test,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("job updated", map[string]interface{}{
		"jobId":        result.JobID,
		"status":       string(result.Status),
		"reopened":     result.Reopened,
		"testReplaced": result.TestReplaced,
	})

	return &Output{
		JobID:         result.JobID,
		Status:        string(result.Status),
		MaxApplicants: result.MaxApplicants,
		Applications:  result.Applications,
		TestID:        result.TestID,
		TestReplaced:  result.TestReplaced,
		Reopened:      result.Reopened,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
