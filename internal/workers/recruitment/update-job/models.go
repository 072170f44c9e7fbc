// internal/workers/recruitment/update-job/models.go
package updatejob

import "recruitment-workers/internal/models"

// Input fields left out of the variables are not changed.
type Input struct {
	CompanyID     string           `json:"companyId"`
	JobID         string           `json:"jobId"`
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Location      *string          `json:"location,omitempty"`
	Status        *string          `json:"status,omitempty"`
	MaxApplicants *int             `json:"maxApplicants,omitempty"`
	Test          *models.TestSpec `json:"test,omitempty"`
}

type Output struct {
	JobID         string `json:"jobId"`
	Status        string `json:"status"`
	MaxApplicants int    `json:"maxApplicants"`
	Applications  int    `json:"applications"`
	TestID        string `json:"testId"`
	TestReplaced  bool   `json:"testReplaced"`
	Reopened      bool   `json:"reopened"`
}
