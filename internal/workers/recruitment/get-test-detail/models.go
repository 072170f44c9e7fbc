// internal/workers/recruitment/get-test-detail/models.go
package gettestdetail

import "recruitment-workers/internal/models"

type Input struct {
	ApplicationID string `json:"applicationId"`
	CompanyID     string `json:"companyId"`
}

type Output struct {
	ApplicationID string                `json:"applicationId"`
	HasTest       bool                  `json:"hasTest"`
	Submitted     bool                  `json:"submitted"`
	Score         float64               `json:"score"`
	Details       []models.AnswerDetail `json:"details"`
}
