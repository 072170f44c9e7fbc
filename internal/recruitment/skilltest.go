package recruitment

import (
	"context"
	"math"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

const (
	testStartedMessage   = "Test started. Good luck!"
	testSubmittedMessage = "You have already submitted this test."
)

// loadSkillTest resolves a job's skill test through the cache. Cache failures fall back to
// the store.
func (s *Service) loadSkillTest(ctx context.Context, jobID string) (*models.SkillTestBundle, error) {
	if s.cache != nil {
		bundle, err := s.cache.Get(ctx, jobID)
		if err != nil {
			s.logger.Warn("Skill test cache read failed", map[string]interface{}{"jobId": jobID, "error": err.Error()})
		} else if bundle != nil {
			return bundle, nil
		}
	}

	test, err := s.store.FindSkillTestByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, err
	}
	bundle := &models.SkillTestBundle{Test: *test, Questions: questions}

	if s.cache != nil {
		if err := s.cache.Set(ctx, bundle); err != nil {
			s.logger.Warn("Skill test cache write failed", map[string]interface{}{"jobId": jobID, "error": err.Error()})
		}
	}
	return bundle, nil
}

// StartTest returns the job's skill test without correct answers. A student who already
// submitted gets the same test id with alreadyStarted set and no questions.
func (s *Service) StartTest(ctx context.Context, studentID, jobID string) (*models.TestStart, error) {
	bundle, err := s.loadSkillTest(ctx, jobID)
	if err != nil {
		return nil, err
	}

	start := &models.TestStart{
		TestID:    bundle.Test.ID,
		TestName:  bundle.Test.TestName,
		Duration:  bundle.Test.Duration,
		Questions: []models.PublicQuestion{},
	}

	_, err = s.store.FindTestResult(ctx, studentID, bundle.Test.ID)
	switch {
	case err == nil:
		start.Message = testSubmittedMessage
		start.AlreadyStarted = true
		return start, nil
	case !errors.Is(err, errors.ErrCodeNotFound):
		return nil, err
	}

	for _, q := range bundle.Questions {
		start.Questions = append(start.Questions, q.Public())
	}
	start.Message = testStartedMessage
	return start, nil
}

// clampScore applies the default of 0 and bounds the score to [0, total].
func clampScore(score *float64, total int) (value float64, adjusted bool) {
	if score == nil || math.IsNaN(*score) {
		return 0, score != nil
	}
	v := *score
	if v < 0 {
		return 0, true
	}
	if limit := float64(total); total > 0 && v > limit {
		return limit, true
	}
	return v, false
}

// SubmitTest stores a student's answers and promotes a TESTING application of the same job
// to PENDING. A second submission is a CONFLICT.
func (s *Service) SubmitTest(ctx context.Context, sub models.TestSubmission) (*models.SubmitResult, error) {
	log := s.logger.WithFields(map[string]interface{}{
		"testId":    sub.TestID,
		"studentId": sub.StudentID,
	})

	var (
		result   *models.SubmitResult
		promoted *models.Application
	)

	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		test, err := repo.GetSkillTest(ctx, sub.TestID)
		if err != nil {
			return err
		}
		student, err := repo.GetStudent(ctx, sub.StudentID)
		if err != nil {
			return err
		}

		_, err = repo.FindTestResult(ctx, sub.StudentID, sub.TestID)
		if err == nil {
			return errors.NewConflictError("Test already submitted",
				"studentId: "+sub.StudentID+", testId: "+sub.TestID)
		}
		if !errors.Is(err, errors.ErrCodeNotFound) {
			return err
		}

		score, adjusted := clampScore(sub.Score, test.TotalScore)
		if adjusted {
			log.Warn("Submitted score out of range, adjusted", map[string]interface{}{
				"score":      score,
				"totalScore": test.TotalScore,
			})
		}
		answers := sub.Answers
		if answers == nil {
			answers = models.Answers{}
		}

		tr := &models.TestResult{
			ID:          s.newID(),
			TestID:      test.ID,
			StudentID:   sub.StudentID,
			Score:       score,
			Answers:     answers,
			SubmittedAt: s.now(),
		}
		if err := repo.InsertTestResult(ctx, tr); err != nil {
			return err
		}
		result = &models.SubmitResult{TestResultID: tr.ID}

		app, err := repo.FindApplication(ctx, sub.StudentID, test.JobID)
		if errors.Is(err, errors.ErrCodeNotFound) {
			// Promotion happens at apply time.
			return nil
		}
		if err != nil {
			return err
		}
		app, err = repo.GetApplication(ctx, app.ID, true)
		if err != nil {
			return err
		}
		result.ApplicationID = app.ID
		if !CanTransition(app.Status, models.StatusPending) {
			return nil
		}

		if err := repo.UpdateApplicationStatus(ctx, app.ID, models.StatusPending); err != nil {
			return err
		}
		job, err := repo.GetJob(ctx, test.JobID)
		if err != nil {
			return err
		}
		if err := s.notifier.send(ctx, repo, student.UserID, testReceivedMessage(job)); err != nil {
			return err
		}
		result.ApplicationUpdated = true
		promoted = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Skill test submitted", map[string]interface{}{
		"testResultId":       result.TestResultID,
		"applicationUpdated": result.ApplicationUpdated,
	})
	if promoted != nil {
		metrics.StatusTransitions.WithLabelValues(string(models.StatusTesting), string(models.StatusPending)).Inc()
		s.audit(ctx, "APPLICATION_STATUS_CHANGED", "application", promoted.ID, map[string]interface{}{
			"from":         models.StatusTesting.String(),
			"to":           models.StatusPending.String(),
			"testResultId": result.TestResultID,
		})
	}
	return result, nil
}
