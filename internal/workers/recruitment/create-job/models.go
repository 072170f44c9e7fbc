// internal/workers/recruitment/create-job/models.go
package createjob

import "recruitment-workers/internal/models"

// Input accepts only the {companyId, job, test} shape.
type Input struct {
	CompanyID string           `json:"companyId"`
	Job       models.JobFields `json:"job"`
	Test      *models.TestSpec `json:"test"`
}

type Output struct {
	JobID        string `json:"jobId"`
	TestID       string `json:"testId,omitempty"`
	HasSkillTest bool   `json:"hasSkillTest"`
}
