package recruitment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/common/metrics"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

// parseInterviewTime tries each configured layout. ok is false for an absent or unparseable value.
func (s *Service) parseInterviewTime(raw string) (t *time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	for _, layout := range s.config.InterviewTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, true
		}
	}
	return nil, false
}

func validRating(rating *int) *int {
	if rating == nil || *rating < 1 || *rating > 5 {
		return nil
	}
	r := *rating
	return &r
}

// Evaluate applies a company's decision to an application.
func (s *Service) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.EvaluationResult, error) {
	log := s.logger.WithFields(map[string]interface{}{
		"applicationId": req.ApplicationID,
		"companyId":     req.CompanyID,
	})

	next, err := models.ParseApplicationStatus(req.NextStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var (
		result *models.EvaluationResult
		from   models.ApplicationStatus
	)

	err = s.store.WithTx(ctx, func(repo repository.Repository) error {
		app, err := repo.GetApplication(ctx, req.ApplicationID, true)
		if err != nil {
			return err
		}
		job, err := repo.GetJob(ctx, app.JobID)
		if err != nil {
			return err
		}
		if job.CompanyID != req.CompanyID {
			return errors.NewForbiddenError(fmt.Sprintf("application %s does not belong to company %s", app.ID, req.CompanyID))
		}

		from = app.Status
		if from.IsTerminal() {
			return errors.NewConflictError("Application already decided",
				fmt.Sprintf("applicationId: %s, status: %s", app.ID, from)).
				WithMetadata("currentStatus", from.String())
		}
		if !contains(decisions[from], next) {
			return errors.NewConflictError("Transition not allowed",
				fmt.Sprintf("%s -> %s", from, next)).
				WithMetadata("currentStatus", from.String())
		}
		if from == models.StatusTesting && next == models.StatusInterview {
			if err := requireTestResult(ctx, repo, app); err != nil {
				return err
			}
		}

		if req.HasEvaluation() {
			if err := repo.InsertEvaluation(ctx, &models.Evaluation{
				ID:            s.newID(),
				ApplicationID: app.ID,
				SkillScore:    req.SkillScore,
				PeerReview:    req.PeerReview,
				Improvement:   req.Improvement,
				CreatedAt:     s.now(),
			}); err != nil {
				return err
			}
		}

		result = &models.EvaluationResult{NewStatus: next}
		var message string

		switch {
		case next == models.StatusInterview:
			date, ok := s.parseInterviewTime(req.InterviewTime)
			if !ok && strings.TrimSpace(req.InterviewTime) != "" {
				log.Warn("Unrecognised interview time, storing without a date", map[string]interface{}{
					"interviewTime": req.InterviewTime,
				})
			}
			iv := &models.Interview{
				ID:            s.newID(),
				ApplicationID: app.ID,
				InterviewDate: date,
				Location:      req.InterviewLocation,
				Note:          req.InterviewNote,
				Status:        models.InterviewScheduled,
				CreatedAt:     s.now(),
			}
			if err := repo.InsertInterview(ctx, iv); err != nil {
				return err
			}
			result.InterviewID = iv.ID
			message = interviewMessage(job, iv, req.InterviewTime)

		case from == models.StatusInterview:
			if err := s.closeInterview(ctx, repo, app.ID, req, log); err != nil {
				return err
			}
			if next == models.StatusOffered {
				offer := &models.Offer{
					ID:            s.newID(),
					ApplicationID: app.ID,
					OfferDetail:   req.OfferDetail,
					Status:        models.OfferPending,
					CreatedAt:     s.now(),
				}
				if err := repo.InsertOffer(ctx, offer); err != nil {
					return err
				}
				result.OfferID = offer.ID
				message = offerMessage(job, req.OfferDetail)
			} else {
				message = rejectedMessage(job)
			}

		default:
			message = rejectedMessage(job)
		}

		if err := repo.UpdateApplicationStatus(ctx, app.ID, next); err != nil {
			return err
		}

		student, err := repo.GetStudent(ctx, app.StudentID)
		if err != nil {
			return err
		}
		return s.notifier.send(ctx, repo, student.UserID, message)
	})
	if err != nil {
		return nil, err
	}

	result.NextActions = NextActions(next)
	metrics.StatusTransitions.WithLabelValues(string(from), string(next)).Inc()
	log.Info("Application evaluated", map[string]interface{}{
		"from": from.String(),
		"to":   next.String(),
	})
	s.audit(ctx, "APPLICATION_STATUS_CHANGED", "application", req.ApplicationID, map[string]interface{}{
		"from":        from.String(),
		"to":          next.String(),
		"companyId":   req.CompanyID,
		"interviewId": result.InterviewID,
		"offerId":     result.OfferID,
	})
	return result, nil
}

// requireTestResult blocks TESTING -> INTERVIEW until the student has submitted the job's test.
func requireTestResult(ctx context.Context, repo repository.Repository, app *models.Application) error {
	test, err := repo.FindSkillTestByJob(ctx, app.JobID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = repo.FindTestResult(ctx, app.StudentID, test.ID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return errors.NewConflictError("Skill test not submitted",
			fmt.Sprintf("applicationId: %s, testId: %s", app.ID, test.ID))
	}
	return err
}

// closeInterview attaches feedback to the latest Scheduled interview and completes it.
func (s *Service) closeInterview(ctx context.Context, repo repository.Repository, applicationID string, req models.EvaluationRequest, log logger.Logger) error {
	iv, err := repo.LatestScheduledInterview(ctx, applicationID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return errors.NewDataIntegrityError(fmt.Sprintf("application %s is in interview without a scheduled interview", applicationID))
	}
	if err != nil {
		return err
	}

	rating := validRating(req.InterviewRating)
	if rating == nil && req.InterviewRating != nil {
		log.Warn("Interview rating out of range, storing without a rating", map[string]interface{}{
			"interviewRating": *req.InterviewRating,
		})
	}
	if err := repo.InsertInterviewFeedback(ctx, &models.InterviewFeedback{
		ID:          s.newID(),
		InterviewID: iv.ID,
		Feedback:    req.InterviewFeedback,
		Rating:      rating,
		CreatedAt:   s.now(),
	}); err != nil {
		return err
	}
	return repo.CompleteInterview(ctx, iv.ID)
}
