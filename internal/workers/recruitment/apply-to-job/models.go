// internal/workers/recruitment/apply-to-job/models.go
package applytojob

type Input struct {
	StudentID string `json:"studentId"`
	JobID     string `json:"jobId"`
}

type Output struct {
	Status        string `json:"status"` // APPLIED, NEED_TEST or ALREADY_APPLIED
	ApplicationID string `json:"applicationId"`
	TestID        string `json:"testId,omitempty"`
}
