// internal/workers/recruitment/add-skill-test/handler.go
package addskilltest

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "add-skill-test"
)

type Service interface {
	AddSkillTest(ctx context.Context, companyID, jobID string, spec models.TestSpec) (string, error)
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
	testID, err := h.service.AddSkillTest(ctx, input.CompanyID, input.JobID, input.Test)
	if err != nil {
		return nil, err
	}

	h.logger.Info("skill test attached", map[string]interface{}{
		"jobId":         input.JobID,
		"testId":        testID,
		"questionCount": len(input.Test.Questions),
	})

	return &Output{JobID: input.JobID, TestID: testID}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
