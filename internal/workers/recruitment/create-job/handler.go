// internal/workers/recruitment/create-job/handler.go
package createjob

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/recruitment"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "create-job"
)

type Service interface {
	CreateJob(ctx context.Context, req models.JobCreateRequest) (*recruitment.CreateJobResult, error)
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
	result, err := h.service.CreateJob(ctx, models.JobCreateRequest{
		CompanyID: input.CompanyID,
		Job:       input.Job,
		Test:      input.Test,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("job posting created", map[string]interface{}{
		"companyId": input.CompanyID,
		"jobId":     result.JobID,
		"testId":    result.TestID,
	})

	return &Output{
		JobID:        result.JobID,
		TestID:       result.TestID,
		HasSkillTest: result.TestID != "",
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
