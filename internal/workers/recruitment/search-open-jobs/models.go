// internal/workers/recruitment/search-open-jobs/models.go
package searchopenjobs

import "recruitment-workers/internal/models"

type Input struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type Output struct {
	Jobs  []models.JobDocument `json:"jobs"`
	Total int                  `json:"total"`
}
