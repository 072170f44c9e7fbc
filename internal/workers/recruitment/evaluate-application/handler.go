// internal/workers/recruitment/evaluate-application/handler.go
package evaluateapplication

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-application"
)

type Service interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.EvaluationResult, error)
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
	result, err := h.service.Evaluate(ctx, models.EvaluationRequest{
		ApplicationID:     input.ApplicationID,
		CompanyID:         input.CompanyID,
		NextStatus:        input.NextStatus,
		SkillScore:        input.SkillScore,
		PeerReview:        input.PeerReview,
		Improvement:       input.Improvement,
		InterviewTime:     input.InterviewTime,
		InterviewLocation: input.InterviewLocation,
		InterviewNote:     input.InterviewNote,
		InterviewFeedback: input.InterviewFeedback,
		InterviewRating:   input.InterviewRating,
		OfferDetail:       input.OfferDetail,
	})
	if err != nil {
		return nil, err
	}

	actions := make([]string, 0, len(result.NextActions))
	for _, status := range result.NextActions {
		actions = append(actions, status.String())
	}

	h.logger.Info("application evaluated", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"companyId":     input.CompanyID,
		"newStatus":     result.NewStatus.String(),
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		NewStatus:     result.NewStatus.String(),
		InterviewID:   result.InterviewID,
		OfferID:       result.OfferID,
		NextActions:   actions,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
