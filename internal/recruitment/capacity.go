package recruitment

import (
	"context"
	"time"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

// CapacityGate enforces maxApplicants. Both calls expect the job row to be locked by the
// surrounding transaction.
type CapacityGate struct {
	now func() time.Time
}

// Reserve admits one more application or reports CAPACITY_EXCEEDED. closed is true when this
// call closed the job; the caller must commit that close even though the apply fails.
func (g *CapacityGate) Reserve(ctx context.Context, repo repository.Repository, job *models.Job) (closed bool, err error) {
	if job.Status == models.JobClosed {
		return false, errors.NewCapacityExceededError(job.ID, job.MaxApplicants).
			WithMetadata("jobStatus", string(job.Status))
	}
	if !job.HasCapacityLimit() {
		return false, nil
	}

	count, err := repo.CountApplications(ctx, job.ID)
	if err != nil {
		return false, err
	}
	if count < job.MaxApplicants {
		return false, nil
	}

	if err := g.close(ctx, repo, job); err != nil {
		return false, err
	}
	return true, errors.NewCapacityExceededError(job.ID, job.MaxApplicants).
		WithMetadata("applications", count)
}

// Settle recounts after an insert and closes the job once the limit is reached.
func (g *CapacityGate) Settle(ctx context.Context, repo repository.Repository, job *models.Job) (closed bool, err error) {
	if !job.HasCapacityLimit() || job.Status == models.JobClosed {
		return false, nil
	}
	count, err := repo.CountApplications(ctx, job.ID)
	if err != nil {
		return false, err
	}
	if count < job.MaxApplicants {
		return false, nil
	}
	if err := g.close(ctx, repo, job); err != nil {
		return false, err
	}
	return true, nil
}

func (g *CapacityGate) close(ctx context.Context, repo repository.Repository, job *models.Job) error {
	if err := repo.SetJobStatus(ctx, job.ID, models.JobClosed); err != nil {
		return err
	}
	job.Status = models.JobClosed
	job.UpdatedAt = g.now()
	return nil
}
