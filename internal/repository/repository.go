// Package repository declares the persistence contract of the lifecycle engine.
//
// Lookups that find nothing return a NOT_FOUND *errors.StandardError; driver failures
// return DATABASE_ERROR; unique constraint violations return CONFLICT.
package repository

import (
	"context"

	"recruitment-workers/internal/models"
)

// Repository is the set of statements available inside (or outside) a transaction.
type Repository interface {
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	// LockJob reads the job row with SELECT ... FOR UPDATE.
	LockJob(ctx context.Context, jobID string) (*models.Job, error)
	CountApplications(ctx context.Context, jobID string) (int, error)
	SetJobStatus(ctx context.Context, jobID string, status models.JobStatus) error
	InsertJob(ctx context.Context, job *models.Job) error
	// UpdateJob writes the editable fields and status of a job.
	UpdateJob(ctx context.Context, job *models.Job) error

	FindApplication(ctx context.Context, studentID, jobID string) (*models.Application, error)
	GetApplication(ctx context.Context, applicationID string, forUpdate bool) (*models.Application, error)
	InsertApplication(ctx context.Context, app *models.Application) error
	UpdateApplicationStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error

	FindSkillTestByJob(ctx context.Context, jobID string) (*models.SkillTest, error)
	GetSkillTest(ctx context.Context, testID string) (*models.SkillTest, error)
	InsertSkillTest(ctx context.Context, test *models.SkillTest) error
	UpdateSkillTest(ctx context.Context, test *models.SkillTest) error
	ListQuestions(ctx context.Context, testID string) ([]models.Question, error)
	InsertQuestion(ctx context.Context, q *models.Question) error
	DeleteQuestions(ctx context.Context, testID string) error

	FindTestResult(ctx context.Context, studentID, testID string) (*models.TestResult, error)
	InsertTestResult(ctx context.Context, result *models.TestResult) error
	// ListTestResults returns the submissions to a job's test, best score first.
	ListTestResults(ctx context.Context, jobID string) ([]models.TestResultSummary, error)

	InsertEvaluation(ctx context.Context, e *models.Evaluation) error
	InsertInterview(ctx context.Context, i *models.Interview) error
	// LatestScheduledInterview locks and returns the newest Scheduled interview.
	LatestScheduledInterview(ctx context.Context, applicationID string) (*models.Interview, error)
	CompleteInterview(ctx context.Context, interviewID string) error
	InsertInterviewFeedback(ctx context.Context, f *models.InterviewFeedback) error
	InsertOffer(ctx context.Context, o *models.Offer) error

	InsertNotification(ctx context.Context, n *models.Notification) error
	InsertAuditLog(ctx context.Context, entry *models.AuditLog) error

	GetStudent(ctx context.Context, studentID string) (*models.Student, error)
}

// Store is a Repository that can also open transactions.
type Store interface {
	Repository
	// WithTx commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(repo Repository) error) error
}

// SkillTestCache is a read-through cache of a job's skill test with its questions.
type SkillTestCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, jobID string) (*models.SkillTestBundle, error)
	Set(ctx context.Context, bundle *models.SkillTestBundle) error
	Invalidate(ctx context.Context, jobID string) error
}

// JobIndex is the searchable projection of job postings.
type JobIndex interface {
	Index(ctx context.Context, doc models.JobDocument) error
	MarkClosed(ctx context.Context, jobID string) error
	SearchOpen(ctx context.Context, query string, limit int) (*models.JobSearchResult, error)
}
