// internal/workers/recruitment/close-job/models.go
package closejob

type Input struct {
	JobID string `json:"jobId"`
}

type Output struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}
