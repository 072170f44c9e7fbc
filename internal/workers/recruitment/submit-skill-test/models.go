// internal/workers/recruitment/submit-skill-test/models.go
package submitskilltest

type Input struct {
	TestID    string            `json:"testId"`
	StudentID string            `json:"studentId"`
	Score     *float64          `json:"score"`
	Answers   map[string]string `json:"answers"`
}

type Output struct {
	TestResultID       string `json:"testResultId"`
	ApplicationUpdated bool   `json:"applicationUpdated"`
	ApplicationID      string `json:"applicationId,omitempty"`
}
