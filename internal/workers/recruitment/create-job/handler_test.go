package createjob

import (
	"context"
	"encoding/json"
	"testing"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/recruitment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	got    models.JobCreateRequest
	result *recruitment.CreateJobResult
	err    error
}

func (s *stubService) CreateJob(ctx context.Context, req models.JobCreateRequest) (*recruitment.CreateJobResult, error) {
	s.got = req
	return s.result, s.err
}

func TestInputDecodesNestedShape(t *testing.T) {
	raw := `{
		"companyId": "c1",
		"job": {"title": "Backend Intern", "location": "Remote", "maxApplicants": 3},
		"test": {"testName": "Go", "questions": [{"content": "Q1", "options": ["a", "b"], "correctAnswer": "a"}]}
	}`
	var in Input
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	assert.Equal(t, "Backend Intern", in.Job.Title)
	assert.Equal(t, 3, in.Job.MaxApplicants)
	require.NotNil(t, in.Test)
	require.Len(t, in.Test.Questions, 1)
	assert.Equal(t, "a", in.Test.Questions[0].CorrectAnswer)
}

func TestExecute(t *testing.T) {
	svc := &stubService{result: &recruitment.CreateJobResult{JobID: "job-1", TestID: "test-1"}}
	h := NewHandler(LoadConfig(), svc, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		CompanyID: "c1",
		Job:       models.JobFields{Title: "Backend Intern"},
		Test:      &models.TestSpec{TestName: "Go"},
	})

	require.NoError(t, err)
	assert.Equal(t, &Output{JobID: "job-1", TestID: "test-1", HasSkillTest: true}, out)
	assert.Equal(t, "c1", svc.got.CompanyID)
	require.NotNil(t, svc.got.Test)
}

func TestExecuteWithoutTest(t *testing.T) {
	svc := &stubService{result: &recruitment.CreateJobResult{JobID: "job-1"}}
	h := NewHandler(LoadConfig(), svc, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{CompanyID: "c1", Job: models.JobFields{Title: "Backend Intern"}})

	require.NoError(t, err)
	assert.False(t, out.HasSkillTest)
	assert.Nil(t, svc.got.Test)
}

func TestExecuteValidationError(t *testing.T) {
	svc := &stubService{err: errors.NewValidationError("job.title is required")}
	h := NewHandler(LoadConfig(), svc, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{CompanyID: "c1"})

	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}
