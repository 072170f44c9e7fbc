package updatejob

import (
	"context"
	"testing"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	last models.JobUpdateRequest
	err  error
}

func (s *stubService) UpdateJob(ctx context.Context, req models.JobUpdateRequest) (*models.JobUpdateResult, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.JobUpdateResult{
		JobID:         req.JobID,
		Status:        models.JobOpen,
		MaxApplicants: *req.MaxApplicants,
		Applications:  2,
		Reopened:      true,
	}, nil
}

func TestExecute(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(LoadConfig(), svc, nil, logger.NewTestLogger(t))
	limit := 3

	out, err := h.Execute(context.Background(), &Input{CompanyID: "c1", JobID: "job-1", MaxApplicants: &limit})

	require.NoError(t, err)
	assert.Equal(t, &Output{JobID: "job-1", Status: "open", MaxApplicants: 3, Applications: 2, Reopened: true}, out)
	assert.Equal(t, "c1", svc.last.CompanyID)
	assert.Nil(t, svc.last.Title)
	assert.Nil(t, svc.last.Test)
}

func TestExecuteCapacityConflict(t *testing.T) {
	svc := &stubService{err: errors.NewConflictError("maxApplicants is below the current number of applications", "job-1")}
	h := NewHandler(LoadConfig(), svc, nil, logger.NewTestLogger(t))
	limit := 1

	_, err := h.Execute(context.Background(), &Input{CompanyID: "c1", JobID: "job-1", MaxApplicants: &limit})

	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
}
