// internal/workers/recruitment/submit-skill-test/handler.go
package submitskilltest

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-skill-test"
)

type Service interface {
	SubmitTest(ctx context.Context, sub models.TestSubmission) (*models.SubmitResult, error)
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
	result, err := h.service.SubmitTest(ctx, models.TestSubmission{
		TestID:    input.TestID,
		StudentID: input.StudentID,
		Score:     input.Score,
		Answers:   models.Answers(input.Answers),
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("skill test submitted", map[string]interface{}{
		"testId":             input.TestID,
		"studentId":          input.StudentID,
		"answerCount":        len(input.Answers),
		"applicationUpdated": result.ApplicationUpdated,
	})

	return &Output{
		TestResultID:       result.TestResultID,
		ApplicationUpdated: result.ApplicationUpdated,
		ApplicationID:      result.ApplicationID,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
