// internal/workers/recruitment/start-skill-test/handler.go
package startskilltest

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "start-skill-test"
)

type Service interface {
	StartTest(ctx context.Context, studentID, jobID string) (*models.TestStart, error)
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
	start, err := h.service.StartTest(ctx, input.StudentID, input.JobID)
	if err != nil {
		return nil, err
	}

	questions := start.Questions
	if questions == nil {
		questions = []models.PublicQuestion{}
	}

	h.logger.Info("skill test opened", map[string]interface{}{
		"studentId":      input.StudentID,
		"jobId":          input.JobID,
		"testId":         start.TestID,
		"alreadyStarted": start.AlreadyStarted,
		"questionCount":  len(questions),
	})

	return &Output{
		TestID:         start.TestID,
		Message:        start.Message,
		AlreadyStarted: start.AlreadyStarted,
		TestName:       start.TestName,
		Duration:       start.Duration,
		Questions:      questions,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
