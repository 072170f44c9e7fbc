// internal/workers/recruitment/application-next-actions/handler.go
package applicationnextactions

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/recruitment"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "application-next-actions"
)

type Service interface {
	GetNextActions(ctx context.Context, applicationID string) (*recruitment.ApplicationState, error)
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
	state, err := h.service.GetNextActions(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	actions := make([]string, 0, len(state.NextActions))
	for _, status := range state.NextActions {
		actions = append(actions, status.String())
	}
	h.logger.Debug("next actions resolved", map[string]interface{}{
		"applicationId": state.ApplicationID,
		"status":        state.Status.String(),
		"actions":       actions,
	})

	return &Output{
		ApplicationID: state.ApplicationID,
		Status:        state.Status.String(),
		NextActions:   actions,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
