package postgres

import (
	"context"
	"time"

	"recruitment-workers/internal/models"
)

const jobColumns = `id, company_id, title, description, location, max_applicants, status, created_at, updated_at`

func scanJob(row interface{ Scan(...interface{}) error }) (*models.Job, error) {
	var j models.Job
	err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.MaxApplicants, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	return &j, err
}

func (r *Repo) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := scanJob(r.q.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if err != nil {
		return nil, rowError("job", jobID, "get job", err)
	}
	return job, nil
}

func (r *Repo) LockJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := scanJob(r.q.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, jobID))
	if err != nil {
		return nil, rowError("job", jobID, "lock job", err)
	}
	return job, nil
}

func (r *Repo) CountApplications(ctx context.Context, jobID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&n); err != nil {
		return 0, queryError("count applications", err)
	}
	return n, nil
}

func (r *Repo) SetJobStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	res, err := r.q.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3`, string(status), time.Now().UTC(), jobID)
	if err != nil {
		return execError("set job status", err)
	}
	return expectOne(res, "job", jobID, "set job status")
}

func (r *Repo) InsertJob(ctx context.Context, job *models.Job) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.ID, job.CompanyID, job.Title, job.Description, job.Location,
		job.MaxApplicants, string(job.Status), job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return execError("insert job", err)
	}
	return nil
}

func (r *Repo) UpdateJob(ctx context.Context, job *models.Job) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE jobs
		SET title = $1, description = $2, location = $3, max_applicants = $4, status = $5, updated_at = $6
		WHERE id = $7`,
		job.Title, job.Description, job.Location, job.MaxApplicants, string(job.Status), job.UpdatedAt, job.ID,
	)
	if err != nil {
		return execError("update job", err)
	}
	return expectOne(res, "job", job.ID, "update job")
}

func (r *Repo) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	var s models.Student
	err := r.q.QueryRowContext(ctx, `SELECT id, user_id, full_name FROM students WHERE id = $1`, studentID).
		Scan(&s.ID, &s.UserID, &s.FullName)
	if err != nil {
		return nil, rowError("student", studentID, "get student", err)
	}
	return &s, nil
}
