// internal/workers/recruitment/application-next-actions/models.go
package applicationnextactions

type Input struct {
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	ApplicationID string   `json:"applicationId"`
	Status        string   `json:"status"`
	NextActions   []string `json:"nextActions"`
}
