package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"recruitment-workers/internal/models"
)

func (r *Repo) InsertEvaluation(ctx context.Context, e *models.Evaluation) error {
	var score sql.NullFloat64
	if e.SkillScore != nil {
		score = sql.NullFloat64{Float64: *e.SkillScore, Valid: true}
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO evaluations (id, application_id, skill_score, peer_review, improvement, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ApplicationID, score, e.PeerReview, e.Improvement, e.CreatedAt,
	)
	if err != nil {
		return execError("insert evaluation", err)
	}
	return nil
}

func (r *Repo) InsertInterview(ctx context.Context, i *models.Interview) error {
	var date sql.NullTime
	if i.InterviewDate != nil {
		date = sql.NullTime{Time: *i.InterviewDate, Valid: true}
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO interviews (id, application_id, interview_date, location, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		i.ID, i.ApplicationID, date, i.Location, i.Note, string(i.Status), i.CreatedAt,
	)
	if err != nil {
		return execError("insert interview", err)
	}
	return nil
}

func (r *Repo) LatestScheduledInterview(ctx context.Context, applicationID string) (*models.Interview, error) {
	var (
		i    models.Interview
		date sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, application_id, interview_date, location, note, status, created_at
		FROM interviews
		WHERE application_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`, applicationID, string(models.InterviewScheduled)).
		Scan(&i.ID, &i.ApplicationID, &date, &i.Location, &i.Note, &i.Status, &i.CreatedAt)
	if err != nil {
		return nil, rowError("scheduled interview", applicationID, "find scheduled interview", err)
	}
	if date.Valid {
		t := date.Time
		i.InterviewDate = &t
	}
	return &i, nil
}

func (r *Repo) CompleteInterview(ctx context.Context, interviewID string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE interviews SET status = $1 WHERE id = $2`, string(models.InterviewCompleted), interviewID)
	if err != nil {
		return execError("complete interview", err)
	}
	return expectOne(res, "interview", interviewID, "complete interview")
}

func (r *Repo) InsertInterviewFeedback(ctx context.Context, f *models.InterviewFeedback) error {
	var rating sql.NullInt64
	if f.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*f.Rating), Valid: true}
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO interview_feedback (id, interview_id, feedback, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.InterviewID, f.Feedback, rating, f.CreatedAt,
	)
	if err != nil {
		return execError("insert interview feedback", err)
	}
	return nil
}

func (r *Repo) InsertOffer(ctx context.Context, o *models.Offer) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO offers (id, application_id, offer_detail, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.ApplicationID, o.OfferDetail, string(o.Status), o.CreatedAt,
	)
	if err != nil {
		return execError("insert offer", err)
	}
	return nil
}

func (r *Repo) InsertNotification(ctx context.Context, n *models.Notification) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, n.Content, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return execError("insert notification", err)
	}
	return nil
}

func (r *Repo) InsertAuditLog(ctx context.Context, entry *models.AuditLog) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		details = []byte("{}")
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO audit_logs (id, event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.EventType, entry.ResourceType, entry.ResourceID, details, entry.CreatedAt,
	)
	if err != nil {
		return execError("insert audit log", err)
	}
	return nil
}
