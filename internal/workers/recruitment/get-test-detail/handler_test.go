package gettestdetail

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
	detail *models.TestDetail
	err    error
}

func (s *stubService) GetTestDetail(ctx context.Context, applicationID, companyID string) (*models.TestDetail, error) {
	return s.detail, s.err
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name   string
		detail *models.TestDetail
		want   *Output
	}{
		{
			name:   "no test",
			detail: &models.TestDetail{},
			want:   &Output{ApplicationID: "app-1", Details: []models.AnswerDetail{}},
		},
		{
			name: "submitted",
			detail: &models.TestDetail{
				HasTest: true, Submitted: true, Score: 80,
				Details: []models.AnswerDetail{{QuestionID: "q1", Question: "Q1", CorrectAnswer: "a", Answer: "a"}},
			},
			want: &Output{
				ApplicationID: "app-1", HasTest: true, Submitted: true, Score: 80,
				Details: []models.AnswerDetail{{QuestionID: "q1", Question: "Q1", CorrectAnswer: "a", Answer: "a"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), &stubService{detail: tt.detail}, nil, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), &Input{ApplicationID: "app-1", CompanyID: "c1"})

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestExecuteForbidden(t *testing.T) {
	h := NewHandler(LoadConfig(), &stubService{err: errors.NewForbiddenError("other company")}, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{ApplicationID: "app-1", CompanyID: "c2"})

	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
}
