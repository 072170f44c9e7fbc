// internal/workers/recruitment/search-open-jobs/handler.go
package searchopenjobs

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-open-jobs"
)

type Service interface {
	SearchOpenJobs(ctx context.Context, query string, limit int) (*models.JobSearchResult, error)
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
	result, err := h.service.SearchOpenJobs(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}

	jobs := result.Jobs
	if jobs == nil {
		jobs = []models.JobDocument{}
	}
	h.logger.Debug("open jobs searched", map[string]interface{}{
		"query": input.Query,
		"hits":  len(jobs),
		"total": result.Total,
	})

	return &Output{Jobs: jobs, Total: result.Total}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
