// internal/workers/recruitment/get-test-detail/handler.go
package gettestdetail

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "get-test-detail"
)

type Service interface {
	GetTestDetail(ctx context.Context, applicationID, companyID string) (*models.TestDetail, error)
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
	detail, err := h.service.GetTestDetail(ctx, input.ApplicationID, input.CompanyID)
	if err != nil {
		return nil, err
	}

	details := detail.Details
	if details == nil {
		details = []models.AnswerDetail{}
	}
	h.logger.Debug("test detail loaded", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"hasTest":       detail.HasTest,
		"submitted":     detail.Submitted,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		HasTest:       detail.HasTest,
		Submitted:     detail.Submitted,
		Score:         detail.Score,
		Details:       details,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
