// internal/workers/recruitment/evaluate-application/models.go
package evaluateapplication

type Input struct {
	ApplicationID     string   `json:"applicationId"`
	CompanyID         string   `json:"companyId"`
	NextStatus        string   `json:"nextStatus"`
	SkillScore        *float64 `json:"skillScore"`
	PeerReview        string   `json:"peerReview"`
	Improvement       string   `json:"improvement"`
	InterviewTime     string   `json:"interviewTime"`
	InterviewLocation string   `json:"interviewLocation"`
	InterviewNote     string   `json:"interviewNote"`
	InterviewFeedback string   `json:"interviewFeedback"`
	InterviewRating   *int     `json:"interviewRating"`
	OfferDetail       string   `json:"offerDetail"`
}

type Output struct {
	ApplicationID string   `json:"applicationId"`
	NewStatus     string   `json:"newStatus"`
	InterviewID   string   `json:"interviewId,omitempty"`
	OfferID       string   `json:"offerId,omitempty"`
	NextActions   []string `json:"nextActions"`
}
