// internal/models/job.go
package models

import (
	"fmt"
	"strings"
	"time"
)

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

// ParseJobStatus accepts the status case-insensitively.
func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(strings.ToLower(strings.TrimSpace(s))) {
	case JobOpen:
		return JobOpen, nil
	case JobClosed:
		return JobClosed, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

type Job struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"companyId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	MaxApplicants int       `json:"maxApplicants"` // 0 = unlimited
	Status        JobStatus `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasCapacityLimit reports whether MaxApplicants is enforced.
func (j *Job) HasCapacityLimit() bool {
	return j.MaxApplicants > 0
}

type JobFields struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	MaxApplicants int    `json:"maxApplicants"`
}

type QuestionSpec struct {
	Content       string   `json:"content"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type TestSpec struct {
	TestName   string         `json:"testName"`
	Duration   int            `json:"duration"`
	TotalScore int            `json:"totalScore"`
	Questions  []QuestionSpec `json:"questions"`
}

// JobCreateRequest is the only accepted shape for job creation.
type JobCreateRequest struct {
	CompanyID string    `json:"companyId"`
	Job       JobFields `json:"job"`
	Test      *TestSpec `json:"test,omitempty"`
}

// JobUpdateRequest changes the given fields of a job; nil fields are kept. Test replaces the
// job's skill test and its questions.
type JobUpdateRequest struct {
	CompanyID     string    `json:"companyId"`
	JobID         string    `json:"jobId"`
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Status        *string   `json:"status,omitempty"`
	MaxApplicants *int      `json:"maxApplicants,omitempty"`
	Test          *TestSpec `json:"test,omitempty"`
}

type JobUpdateResult struct {
	JobID         string    `json:"jobId"`
	Status        JobStatus `json:"status"`
	MaxApplicants int       `json:"maxApplicants"`
	Applications  int       `json:"applications"`
	TestID        string    `json:"testId,omitempty"`
	TestReplaced  bool      `json:"testReplaced"`
	Reopened      bool      `json:"reopened"`
}

// JobDocument is the search index projection of a job.
type JobDocument struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"companyId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	MaxApplicants int       `json:"maxApplicants"`
	Status        JobStatus `json:"status"`
	HasSkillTest  bool      `json:"hasSkillTest"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToDocument projects a job for indexing.
func (j *Job) ToDocument(hasSkillTest bool) JobDocument {
	return JobDocument{
		ID:            j.ID,
		CompanyID:     j.CompanyID,
		Title:         j.Title,
		Description:   j.Description,
		Location:      j.Location,
		MaxApplicants: j.MaxApplicants,
		Status:        j.Status,
		HasSkillTest:  hasSkillTest,
		CreatedAt:     j.CreatedAt,
	}
}

type JobSearchResult struct {
	Jobs  []JobDocument `json:"jobs"`
	Total int           `json:"total"`
}
