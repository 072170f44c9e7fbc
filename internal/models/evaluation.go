// internal/models/evaluation.go
package models

import "time"

type Evaluation struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	SkillScore    *float64  `json:"skillScore,omitempty"`
	PeerReview    string    `json:"peerReview,omitempty"`
	Improvement   string    `json:"improvement,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "Scheduled"
	InterviewCompleted InterviewStatus = "Completed"
)

type Interview struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"applicationId"`
	InterviewDate *time.Time      `json:"interviewDate,omitempty"`
	Location      string          `json:"location"`
	Note          string          `json:"note"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type InterviewFeedback struct {
	ID          string    `json:"id"`
	InterviewID string    `json:"interviewId"`
	Feedback    string    `json:"feedback"`
	Rating      *int      `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OfferStatus string

const OfferPending OfferStatus = "Pending"

type Offer struct {
	ID            string      `json:"id"`
	ApplicationID string      `json:"applicationId"`
	OfferDetail   string      `json:"offerDetail"`
	Status        OfferStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// EvaluationRequest carries a company's decision on an application.
type EvaluationRequest struct {
	ApplicationID     string   `json:"applicationId"`
	CompanyID         string   `json:"companyId"`
	NextStatus        string   `json:"nextStatus"`
	SkillScore        *float64 `json:"skillScore,omitempty"`
	PeerReview        string   `json:"peerReview,omitempty"`
	Improvement       string   `json:"improvement,omitempty"`
	InterviewTime     string   `json:"interviewTime,omitempty"`
	InterviewLocation string   `json:"interviewLocation,omitempty"`
	InterviewNote     string   `json:"interviewNote,omitempty"`
	InterviewFeedback string   `json:"interviewFeedback,omitempty"`
	InterviewRating   *int     `json:"interviewRating,omitempty"`
	OfferDetail       string   `json:"offerDetail,omitempty"`
}

// HasEvaluation reports whether any scoring field was supplied.
func (r *EvaluationRequest) HasEvaluation() bool {
	return r.SkillScore != nil || r.PeerReview != "" || r.Improvement != ""
}

type EvaluationResult struct {
	NewStatus   ApplicationStatus   `json:"newStatus"`
	InterviewID string              `json:"interviewId,omitempty"`
	OfferID     string              `json:"offerId,omitempty"`
	NextActions []ApplicationStatus `json:"nextActions"`
}
