package recruitment

import (
	"context"
	"fmt"
	"strings"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

type TestResultList struct {
	JobID   string                     `json:"jobId"`
	Results []models.TestResultSummary `json:"results"`
	Total   int                        `json:"total"`
}

// UpdateJob edits a job under its row lock and re-applies the capacity rule to the result:
// a job at its limit is closed, and a job that was closed by reaching its old limit reopens
// when the limit is raised past the current count. The limit can never drop below the
// applications already admitted.
func (s *Service) UpdateJob(ctx context.Context, req models.JobUpdateRequest) (*models.JobUpdateResult, error) {
	var requested *models.JobStatus
	if req.Status != nil {
		status, err := models.ParseJobStatus(*req.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		requested = &status
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, errors.NewValidationError("title must not be empty")
	}
	if req.MaxApplicants != nil && *req.MaxApplicants < 0 {
		return nil, errors.NewValidationError("maxApplicants must not be negative")
	}

	log := s.logger.WithFields(map[string]interface{}{
		"jobId":     req.JobID,
		"companyId": req.CompanyID,
	})

	var (
		job          *models.Job
		result       *models.JobUpdateResult
		previous     models.JobStatus
		hasSkillTest bool
	)
	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		var err error
		job, err = repo.LockJob(ctx, req.JobID)
		if err != nil {
			return err
		}
		if job.CompanyID != req.CompanyID {
			return errors.NewForbiddenError(fmt.Sprintf("job %s does not belong to company %s", req.JobID, req.CompanyID))
		}
		previous = job.Status

		count, err := repo.CountApplications(ctx, job.ID)
		if err != nil {
			return err
		}
		wasFull := job.HasCapacityLimit() && count >= job.MaxApplicants

		if req.Title != nil {
			job.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			job.Description = *req.Description
		}
		if req.Location != nil {
			job.Location = *req.Location
		}
		if req.MaxApplicants != nil {
			if *req.MaxApplicants > 0 && count > *req.MaxApplicants {
				return errors.NewConflictError("maxApplicants is below the current number of applications",
					fmt.Sprintf("jobId: %s, applications: %d, maxApplicants: %d", job.ID, count, *req.MaxApplicants)).
					WithMetadata("applications", count)
			}
			job.MaxApplicants = *req.MaxApplicants
		}
		full := job.HasCapacityLimit() && count >= job.MaxApplicants

		reopened := false
		switch {
		case requested != nil && *requested == models.JobOpen && full:
			return errors.NewCapacityExceededError(job.ID, job.MaxApplicants).
				WithMetadata("applications", count)
		case requested != nil:
			job.Status = *requested
		case full:
			job.Status = models.JobClosed
		case job.Status == models.JobClosed && wasFull && req.MaxApplicants != nil:
			job.Status = models.JobOpen
			reopened = true
		}

		result = &models.JobUpdateResult{JobID: job.ID, Applications: count, Reopened: reopened}
		if req.Test != nil {
			testID, err := s.replaceSkillTest(ctx, repo, job, *req.Test, count)
			if err != nil {
				return err
			}
			result.TestID = testID
			result.TestReplaced = true
			hasSkillTest = true
		} else {
			test, err := repo.FindSkillTestByJob(ctx, job.ID)
			switch {
			case err == nil:
				result.TestID = test.ID
				hasSkillTest = true
			case !errors.Is(err, errors.ErrCodeNotFound):
				return err
			}
		}

		job.UpdatedAt = s.now()
		if err := repo.UpdateJob(ctx, job); err != nil {
			return err
		}
		result.Status = job.Status
		result.MaxApplicants = job.MaxApplicants
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.TestReplaced && s.cache != nil {
		if err := s.cache.Invalidate(ctx, job.ID); err != nil {
			log.Warn("Skill test cache invalidation failed", map[string]interface{}{"error": err.Error()})
		}
	}
	s.indexJob(ctx, job, hasSkillTest)
	if previous != models.JobClosed && job.Status == models.JobClosed {
		reason := "manual"
		if requested == nil {
			reason = "capacity"
		}
		metrics.JobsClosed.WithLabelValues(reason).Inc()
	}

	log.Info("Job updated", map[string]interface{}{
		"status":        job.Status,
		"maxApplicants": job.MaxApplicants,
		"reopened":      result.Reopened,
		"testReplaced":  result.TestReplaced,
	})
	s.audit(ctx, "JOB_UPDATED", "job", job.ID, map[string]interface{}{
		"from":          string(previous),
		"to":            string(job.Status),
		"maxApplicants": job.MaxApplicants,
		"testReplaced":  result.TestReplaced,
	})
	return result, nil
}

// replaceSkillTest creates the job's test or rewrites it in place with new questions. It is
// refused once anyone applied or submitted, since their results refer to the old questions.
func (s *Service) replaceSkillTest(ctx context.Context, repo repository.Repository, job *models.Job, spec models.TestSpec, applications int) (string, error) {
	if applications > 0 {
		return "", errors.NewConflictError("Job already has applications",
			fmt.Sprintf("jobId: %s, applications: %d", job.ID, applications)).
			WithMetadata("applications", applications)
	}

	existing, err := repo.FindSkillTestByJob(ctx, job.ID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		test, err := s.insertSkillTest(ctx, repo, job, spec)
		if err != nil {
			return "", err
		}
		return test.ID, nil
	}
	if err != nil {
		return "", err
	}

	results, err := repo.ListTestResults(ctx, job.ID)
	if err != nil {
		return "", err
	}
	if len(results) > 0 {
		return "", errors.NewConflictError("Skill test already has submissions",
			fmt.Sprintf("testId: %s, submissions: %d", existing.ID, len(results)))
	}

	test := s.skillTestFrom(job, spec)
	test.ID = existing.ID
	test.CreatedAt = existing.CreatedAt
	if err := repo.UpdateSkillTest(ctx, test); err != nil {
		return "", err
	}
	if err := repo.DeleteQuestions(ctx, test.ID); err != nil {
		return "", err
	}
	if err := s.insertQuestions(ctx, repo, test.ID, spec.Questions); err != nil {
		return "", err
	}
	return test.ID, nil
}

// ListTestResults lists the submissions to a job's test for the owning company.
func (s *Service) ListTestResults(ctx context.Context, companyID, jobID string) (*TestResultList, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, errors.NewForbiddenError(fmt.Sprintf("job %s does not belong to company %s", jobID, companyID))
	}
	results, err := s.store.ListTestResults(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &TestResultList{JobID: jobID, Results: results, Total: len(results)}, nil
}
