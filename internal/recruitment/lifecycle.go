package recruitment

import (
	"context"
	"fmt"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

// transitions is the forward-only status graph. StatusNone is the state before an
// application row exists. Apply and test submission move along it; company decisions are
// the subset in decisions.
var transitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusNone:      {models.StatusTesting, models.StatusPending},
	models.StatusTesting:   {models.StatusPending, models.StatusInterview, models.StatusRejected},
	models.StatusPending:   {models.StatusInterview, models.StatusRejected},
	models.StatusInterview: {models.StatusOffered, models.StatusRejected},
}

// decisions are the transitions a company can take through evaluate. TESTING -> PENDING
// only happens on test submission.
var decisions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusTesting:   {models.StatusInterview, models.StatusRejected},
	models.StatusPending:   {models.StatusInterview, models.StatusRejected},
	models.StatusInterview: {models.StatusOffered, models.StatusRejected},
}

// CanTransition reports whether the graph has an edge from -> to.
func CanTransition(from, to models.ApplicationStatus) bool {
	return contains(transitions[from], to)
}

// NextActions returns the decisions available from status. Terminal states have none.
func NextActions(status models.ApplicationStatus) []models.ApplicationStatus {
	next := decisions[status]
	out := make([]models.ApplicationStatus, len(next))
	copy(out, next)
	return out
}

func contains(list []models.ApplicationStatus, s models.ApplicationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ApplicationState is the status of one application with its available decisions.
type ApplicationState struct {
	ApplicationID string                     `json:"applicationId"`
	Status        models.ApplicationStatus   `json:"status"`
	NextActions   []models.ApplicationStatus `json:"nextActions"`
}

// GetNextActions loads an application and lists its legal decisions.
func (s *Service) GetNextActions(ctx context.Context, applicationID string) (*ApplicationState, error) {
	app, err := s.store.GetApplication(ctx, applicationID, false)
	if err != nil {
		return nil, err
	}
	return &ApplicationState{
		ApplicationID: app.ID,
		Status:        app.Status,
		NextActions:   NextActions(app.Status),
	}, nil
}

// Apply creates the application of a student for a job, or reports ALREADY_APPLIED.
// The job row stays locked from the capacity check until commit.
func (s *Service) Apply(ctx context.Context, studentID, jobID string) (*models.ApplyResult, error) {
	log := s.logger.WithFields(map[string]interface{}{
		"studentId": studentID,
		"jobId":     jobID,
	})

	var (
		result     *models.ApplyResult
		rejection  error
		closedJob  bool
		createdApp *models.Application
	)

	err := s.store.WithTx(ctx, func(repo repository.Repository) error {
		student, err := repo.GetStudent(ctx, studentID)
		if err != nil {
			return err
		}
		job, err := repo.LockJob(ctx, jobID)
		if err != nil {
			return err
		}

		existing, err := repo.FindApplication(ctx, studentID, jobID)
		if err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
			return err
		}
		if existing != nil {
			result = &models.ApplyResult{Outcome: models.OutcomeAlreadyApplied, ApplicationID: existing.ID}
			return nil
		}

		closed, err := s.gate.Reserve(ctx, repo, job)
		if err != nil {
			if closed {
				// Keep the close: commit, then report the rejection.
				closedJob = true
				rejection = err
				return nil
			}
			return err
		}

		status := models.StatusPending
		outcome := models.OutcomeApplied
		testID := ""
		test, err := repo.FindSkillTestByJob(ctx, jobID)
		switch {
		case err == nil:
			testID = test.ID
			_, resErr := repo.FindTestResult(ctx, studentID, test.ID)
			if resErr != nil && !errors.Is(resErr, errors.ErrCodeNotFound) {
				return resErr
			}
			if resErr != nil {
				status = models.StatusTesting
				outcome = models.OutcomeNeedTest
			}
		case errors.Is(err, errors.ErrCodeNotFound):
		default:
			return err
		}
		if !CanTransition(models.StatusNone, status) {
			return errors.NewConflictError("Transition not allowed", fmt.Sprintf("none -> %s", status))
		}

		now := s.now()
		app := &models.Application{
			ID:        s.newID(),
			StudentID: studentID,
			JobID:     jobID,
			Status:    status,
			AppliedAt: now,
			UpdatedAt: now,
		}
		if err := repo.InsertApplication(ctx, app); err != nil {
			return err
		}

		closedJob, err = s.gate.Settle(ctx, repo, job)
		if err != nil {
			return err
		}

		message := appliedMessage(job)
		if outcome == models.OutcomeNeedTest {
			message = needTestMessage(job)
		}
		if err := s.notifier.send(ctx, repo, student.UserID, message); err != nil {
			return err
		}

		createdApp = app
		result = &models.ApplyResult{Outcome: outcome, ApplicationID: app.ID}
		if outcome == models.OutcomeNeedTest {
			result.TestID = testID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if closedJob {
		metrics.JobsClosed.WithLabelValues("capacity").Inc()
		log.Info("Job reached its applicant limit and was closed", nil)
		if err := s.markJobClosed(ctx, jobID); err != nil {
			log.Warn("Failed to mark job closed in search index", map[string]interface{}{"error": err.Error()})
		}
		s.audit(ctx, "JOB_CLOSED", "job", jobID, map[string]interface{}{"reason": "capacity"})
	}

	if rejection != nil {
		metrics.ApplicationsTotal.WithLabelValues(string(errors.ErrCodeCapacityExceeded)).Inc()
		return nil, rejection
	}

	metrics.ApplicationsTotal.WithLabelValues(string(result.Outcome)).Inc()
	if createdApp != nil {
		metrics.StatusTransitions.WithLabelValues("none", string(createdApp.Status)).Inc()
		log.Info("Application created", map[string]interface{}{
			"applicationId": createdApp.ID,
			"status":        createdApp.Status.String(),
		})
		s.audit(ctx, "APPLICATION_CREATED", "application", createdApp.ID, map[string]interface{}{
			"studentId": studentID,
			"jobId":     jobID,
			"status":    createdApp.Status.String(),
		})
	}
	return result, nil
}
