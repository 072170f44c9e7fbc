// internal/workers/recruitment/list-test-results/models.go
package listtestresults

import "recruitment-workers/internal/models"

type Input struct {
	CompanyID string `json:"companyId"`
	JobID     string `json:"jobId"`
}

type Output struct {
	JobID   string                     `json:"jobId"`
	Results []models.TestResultSummary `json:"results"`
	Total   int                        `json:"total"`
}
