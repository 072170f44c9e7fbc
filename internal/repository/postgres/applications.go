package postgres

import (
	"context"
	"time"

	"recruitment-workers/internal/models"
)

const applicationColumns = `id, student_id, job_id, status, applied_at, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }) (*models.Application, error) {
	var a models.Application
	err := row.Scan(&a.ID, &a.StudentID, &a.JobID, &a.Status, &a.AppliedAt, &a.UpdatedAt)
	return &a, err
}

func (r *Repo) FindApplication(ctx context.Context, studentID, jobID string) (*models.Application, error) {
	app, err := scanApplication(r.q.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 AND job_id = $2`, studentID, jobID))
	if err != nil {
		return nil, rowError("application", studentID+"/"+jobID, "find application", err)
	}
	return app, nil
}

func (r *Repo) GetApplication(ctx context.Context, applicationID string, forUpdate bool) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	app, err := scanApplication(r.q.QueryRowContext(ctx, query, applicationID))
	if err != nil {
		return nil, rowError("application", applicationID, "get application", err)
	}
	return app, nil
}

func (r *Repo) InsertApplication(ctx context.Context, app *models.Application) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		app.ID, app.StudentID, app.JobID, app.Status, app.AppliedAt, app.UpdatedAt,
	)
	if err != nil {
		return execError("insert application", err)
	}
	return nil
}

func (r *Repo) UpdateApplicationStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), applicationID)
	if err != nil {
		return execError("update application status", err)
	}
	return expectOne(res, "application", applicationID, "update application status")
}
