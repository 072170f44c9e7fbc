// internal/workers/recruitment/start-skill-test/models.go
package startskilltest

import "recruitment-workers/internal/models"

type Input struct {
	StudentID string `json:"studentId"`
	JobID     string `json:"jobId"`
}

// Output never carries correct answers.
type Output struct {
	TestID         string                  `json:"testId"`
	Message        string                  `json:"message"`
	AlreadyStarted bool                    `json:"alreadyStarted"`
	TestName       string                  `json:"testName"`
	Duration       int                     `json:"duration"`
	Questions      []models.PublicQuestion `json:"questions"`
}
