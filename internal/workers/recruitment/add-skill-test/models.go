// internal/workers/recruitment/add-skill-test/models.go
package addskilltest

import "recruitment-workers/internal/models"

type Input struct {
	CompanyID string          `json:"companyId"`
	JobID     string          `json:"jobId"`
	Test      models.TestSpec `json:"test"`
}

type Output struct {
	JobID  string `json:"jobId"`
	TestID string `json:"testId"`
}
