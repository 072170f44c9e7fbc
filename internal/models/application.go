// internal/models/application.go
package models

import "time"

type Application struct {
	ID        string            `json:"id"`
	StudentID string            `json:"studentId"`
	JobID     string            `json:"jobId"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ApplyOutcome is the non-error result of an apply attempt.
type ApplyOutcome string

const (
	OutcomeApplied        ApplyOutcome = "APPLIED"
	OutcomeNeedTest       ApplyOutcome = "NEED_TEST"
	OutcomeAlreadyApplied ApplyOutcome = "ALREADY_APPLIED"
)

type ApplyResult struct {
	Outcome       ApplyOutcome `json:"status"`
	ApplicationID string       `json:"applicationId"`
	TestID        string       `json:"testId,omitempty"`
}

type Student struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
}

type Company struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
