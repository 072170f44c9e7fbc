package recruitment

import (
	"context"
	"fmt"
	"strings"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"

	"golang.org/x/sync/errgroup"
)

const maxSearchLimit = 100

type CreateJobResult struct {
	JobID  string `json:"jobId"`
	TestID string `json:"testId,omitempty"`
}

type CloseJobResult struct {
	JobID  string           `json:"jobId"`
	Status models.JobStatus `json:"status"`
}

// CreateJob stores a job posting and, when present, its skill test with questions.
func (s *Service) CreateJob(ctx context.Context, req models.JobCreateRequest) (*CreateJobResult, error) {
	title := strings.TrimSpace(req.Job.Title)
	if title == "" {
		return nil, errors.NewValidationError("job.title is required")
	}
	if req.Job.MaxApplicants < 0 {
		return nil, errors.NewValidationError("job.maxApplicants must not be negative")
	}

	now := s.now()
	job := &models.Job{
		ID:            s.newID(),
		CompanyID:     req.CompanyID,
		Title:         title,
		Description:   req.Job.Description,
		Location:      req.Job.Location,
		MaxApplicants: req.Job.MaxApplicants,
		Status:        models.JobOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	result := &CreateJobResult{JobID: job.ID}

	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		if err := repo.InsertJob(ctx, job); err != nil {
			return err
		}
		if req.Test == nil {
			return nil
		}
		test, err := s.insertSkillTest(ctx, repo, job, *req.Test)
		if err != nil {
			return err
		}
		result.TestID = test.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Job created", map[string]interface{}{
		"jobId":        job.ID,
		"companyId":    job.CompanyID,
		"hasSkillTest": result.TestID != "",
	})
	s.indexJob(ctx, job, result.TestID != "")
	s.audit(ctx, "JOB_CREATED", "job", job.ID, map[string]interface{}{
		"companyId": job.CompanyID,
		"testId":    result.TestID,
	})
	return result, nil
}

// skillTestFrom applies the defaults for a test of job.
func (s *Service) skillTestFrom(job *models.Job, spec models.TestSpec) *models.SkillTest {
	test := &models.SkillTest{
		ID:         s.newID(),
		JobID:      job.ID,
		TestName:   strings.TrimSpace(spec.TestName),
		Duration:   spec.Duration,
		TotalScore: spec.TotalScore,
		CreatedAt:  s.now(),
	}
	if test.TestName == "" {
		test.TestName = job.Title + " Skill Test"
	}
	if test.Duration <= 0 {
		test.Duration = s.config.DefaultTestDuration
	}
	if test.TotalScore <= 0 {
		test.TotalScore = s.config.DefaultTestTotalScore
	}
	return test
}

func (s *Service) insertSkillTest(ctx context.Context, repo repository.Repository, job *models.Job, spec models.TestSpec) (*models.SkillTest, error) {
	test := s.skillTestFrom(job, spec)
	if err := repo.InsertSkillTest(ctx, test); err != nil {
		return nil, err
	}
	if err := s.insertQuestions(ctx, repo, test.ID, spec.Questions); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *Service) insertQuestions(ctx context.Context, repo repository.Repository, testID string, specs []models.QuestionSpec) error {
	for i, q := range specs {
		content := strings.TrimSpace(q.Content)
		if content == "" {
			return errors.NewValidationError(fmt.Sprintf("test.questions[%d].content is required", i))
		}
		options := q.Options
		if options == nil {
			options = []string{}
		}
		if err := repo.InsertQuestion(ctx, &models.Question{
			ID:            s.newID(),
			TestID:        testID,
			Content:       content,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
		}); err != nil {
			return err
		}
	}
	return nil
}

// AddSkillTest attaches a test to a job that has neither a test nor applications.
func (s *Service) AddSkillTest(ctx context.Context, companyID, jobID string, spec models.TestSpec) (string, error) {
	var (
		job  *models.Job
		test *models.SkillTest
	)
	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		var err error
		job, err = repo.LockJob(ctx, jobID)
		if err != nil {
			return err
		}
		if job.CompanyID != companyID {
			return errors.NewForbiddenError(fmt.Sprintf("job %s does not belong to company %s", jobID, companyID))
		}
		_, err = repo.FindSkillTestByJob(ctx, jobID)
		if err == nil {
			return errors.NewConflictError("Job already has a skill test", "jobId: "+jobID)
		}
		if !errors.Is(err, errors.ErrCodeNotFound) {
			return err
		}
		// Existing applicants were admitted without a test and cannot be moved back to TESTING.
		if err := requireNoApplications(ctx, repo, jobID); err != nil {
			return err
		}
		test, err = s.insertSkillTest(ctx, repo, job, spec)
		return err
	})
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, jobID); err != nil {
			s.logger.Warn("Skill test cache invalidation failed", map[string]interface{}{"jobId": jobID, "error": err.Error()})
		}
	}
	s.indexJob(ctx, job, true)
	s.logger.Info("Skill test added", map[string]interface{}{"jobId": jobID, "testId": test.ID})
	s.audit(ctx, "SKILL_TEST_ADDED", "job", jobID, map[string]interface{}{"testId": test.ID})
	return test.ID, nil
}

func requireNoApplications(ctx context.Context, repo repository.Repository, jobID string) error {
	count, err := repo.CountApplications(ctx, jobID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.NewConflictError("Job already has applications", fmt.Sprintf("jobId: %s, applications: %d", jobID, count)).
			WithMetadata("applications", count)
	}
	return nil
}

// CloseJob closes a job and mirrors the close to the search index. Closing a closed job
// succeeds, so a failed index update can be retried.
func (s *Service) CloseJob(ctx context.Context, jobID string) (*CloseJobResult, error) {
	changed := false
	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		job, err := repo.LockJob(ctx, jobID)
		if err != nil {
			return err
		}
		if job.Status == models.JobClosed {
			return nil
		}
		changed = true
		return repo.SetJobStatus(ctx, jobID, models.JobClosed)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.JobsClosed.WithLabelValues("manual").Inc()
		s.logger.Info("Job closed", map[string]interface{}{"jobId": jobID})
		s.audit(ctx, "JOB_CLOSED", "job", jobID, map[string]interface{}{"reason": "manual"})
	}
	if err := s.markJobClosed(ctx, jobID); err != nil {
		return nil, errors.NewSearchFailedError("mark job closed", err)
	}
	return &CloseJobResult{JobID: jobID, Status: models.JobClosed}, nil
}

// SearchOpenJobs queries the search index for open postings.
func (s *Service) SearchOpenJobs(ctx context.Context, query string, limit int) (*models.JobSearchResult, error) {
	if limit <= 0 {
		limit = s.config.SearchResultLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if s.index == nil {
		return &models.JobSearchResult{Jobs: []models.JobDocument{}}, nil
	}
	result, err := s.index.SearchOpen(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, errors.NewSearchFailedError("search open jobs", err)
	}
	return result, nil
}

// GetTestDetail pairs each question of the job's test with the candidate's answer for the
// owning company.
func (s *Service) GetTestDetail(ctx context.Context, applicationID, companyID string) (*models.TestDetail, error) {
	app, err := s.store.GetApplication(ctx, applicationID, false)
	if err != nil {
		return nil, err
	}
	job, err := s.store.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, errors.NewForbiddenError(fmt.Sprintf("application %s does not belong to company %s", applicationID, companyID))
	}

	detail := &models.TestDetail{Details: []models.AnswerDetail{}}
	test, err := s.store.FindSkillTestByJob(ctx, job.ID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return detail, nil
	}
	if err != nil {
		return nil, err
	}
	detail.HasTest = true

	var (
		questions []models.Question
		result    *models.TestResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.store.ListQuestions(gctx, test.ID)
		return err
	})
	g.Go(func() error {
		r, err := s.store.FindTestResult(gctx, app.StudentID, test.ID)
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil
		}
		result = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result == nil {
		return detail, nil
	}
	detail.Submitted = true
	detail.Score = result.Score
	for _, q := range questions {
		detail.Details = append(detail.Details, models.AnswerDetail{
			QuestionID:    q.ID,
			Question:      q.Content,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Answer:        answerFor(result.Answers, q.ID),
		})
	}
	return detail, nil
}

// answerFor accepts answers keyed by question id or by "answer_<id>".
func answerFor(answers models.Answers, questionID string) string {
	if a, ok := answers[questionID]; ok {
		return a
	}
	return answers["answer_"+questionID]
}
