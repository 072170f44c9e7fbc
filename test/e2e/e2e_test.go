// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-workers/internal/common/config"
	"recruitment-workers/internal/common/database"
	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/recruitment"
	"recruitment-workers/internal/repository"
	"recruitment-workers/internal/repository/cache"
	"recruitment-workers/internal/repository/postgres"
	"recruitment-workers/internal/repository/search"
)

// Requires E2E_POSTGRES_DSN. E2E_REDIS_ADDRESS and E2E_ELASTICSEARCH_URL add the cache and
// search index to the run.
var pg *database.PostgresClient

func TestMain(m *testing.M) {
	dsn := os.Getenv("E2E_POSTGRES_DSN")
	if dsn == "" {
		fmt.Println("E2E_POSTGRES_DSN not set, skipping e2e tests")
		os.Exit(0)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open postgres: %v", err))
	}
	pg = database.NewPostgresFromDB(db)
	if err := pg.Ping(context.Background()); err != nil {
		panic(fmt.Sprintf("failed to connect to postgres: %v", err))
	}

	schema, err := os.ReadFile("../../migrations/001_init.sql")
	if err != nil {
		panic(fmt.Sprintf("failed to read migrations: %v", err))
	}
	if _, err := db.Exec(string(schema)); err != nil {
		panic(fmt.Sprintf("failed to apply migrations: %v", err))
	}

	code := m.Run()
	pg.Close()
	os.Exit(code)
}

func newService(t *testing.T) *recruitment.Service {
	t.Helper()
	log := logger.NewTestLogger(t)

	var skillCache repository.SkillTestCache
	if addr := os.Getenv("E2E_REDIS_ADDRESS"); addr != "" {
		rdb, err := database.NewRedis(config.RedisConfig{Address: addr})
		require.NoError(t, err)
		require.NoError(t, rdb.Ping(context.Background()))
		t.Cleanup(func() { rdb.Close() })
		skillCache = cache.NewSkillTestCache(rdb.GetClient(), time.Minute)
	}

	var index repository.JobIndex
	if url := os.Getenv("E2E_ELASTICSEARCH_URL"); url != "" {
		es, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: url}, nil)
		require.NoError(t, err)
		require.NoError(t, es.Ping(context.Background()))
		index = search.NewJobIndex(es.Client, "jobs-e2e")
	}

	return recruitment.NewService(postgres.NewStore(pg), skillCache, index, recruitment.Config{}, log)
}

func seedCompany(t *testing.T) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pg.DB.Exec(`INSERT INTO companies (id, user_id, name) VALUES ($1, $2, $3)`, id, uuid.NewString(), "Acme "+id[:8])
	require.NoError(t, err)
	return id
}

func seedStudent(t *testing.T) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pg.DB.Exec(`INSERT INTO students (id, user_id, full_name) VALUES ($1, $2, $3)`, id, uuid.NewString(), "Student "+id[:8])
	require.NoError(t, err)
	return id
}

func applicationStatus(t *testing.T, id string) models.ApplicationStatus {
	t.Helper()
	var status string
	require.NoError(t, pg.DB.QueryRow(`SELECT status FROM applications WHERE id = $1`, id).Scan(&status))
	return models.ApplicationStatus(status)
}

func TestFullApplicationLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	svc := newService(t)
	companyID := seedCompany(t)
	studentID := seedStudent(t)

	created, err := svc.CreateJob(ctx, models.JobCreateRequest{
		CompanyID: companyID,
		Job:       models.JobFields{Title: "Backend Intern", Location: "Remote", MaxApplicants: 5},
		Test: &models.TestSpec{Questions: []models.QuestionSpec{
			{Content: "What is a goroutine?", Options: []string{"a thread", "a lightweight thread"}, CorrectAnswer: "a lightweight thread"},
		}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.TestID)

	applied, err := svc.Apply(ctx, studentID, created.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeNeedTest, applied.Outcome)
	assert.Equal(t, models.StatusTesting, applicationStatus(t, applied.ApplicationID))

	start, err := svc.StartTest(ctx, studentID, created.JobID)
	require.NoError(t, err)
	require.Len(t, start.Questions, 1)

	score := 90.0
	submitted, err := svc.SubmitTest(ctx, models.TestSubmission{
		TestID:    created.TestID,
		StudentID: studentID,
		Score:     &score,
		Answers:   models.Answers{start.Questions[0].ID: "a lightweight thread"},
	})
	require.NoError(t, err)
	assert.True(t, submitted.ApplicationUpdated)
	assert.Equal(t, models.StatusPending, applicationStatus(t, applied.ApplicationID))

	detail, err := svc.GetTestDetail(ctx, applied.ApplicationID, companyID)
	require.NoError(t, err)
	assert.True(t, detail.Submitted)
	assert.Equal(t, 90.0, detail.Score)

	interview, err := svc.Evaluate(ctx, models.EvaluationRequest{
		ApplicationID:     applied.ApplicationID,
		CompanyID:         companyID,
		NextStatus:        "interview",
		InterviewTime:     "2025-01-10T10:00",
		InterviewLocation: "Room 1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, interview.InterviewID)

	rating := 5
	offered, err := svc.Evaluate(ctx, models.EvaluationRequest{
		ApplicationID:     applied.ApplicationID,
		CompanyID:         companyID,
		NextStatus:        "offered",
		InterviewFeedback: "Strong",
		InterviewRating:   &rating,
		OfferDetail:       "Start in March",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, offered.OfferID)
	assert.Empty(t, offered.NextActions)
	assert.Equal(t, models.StatusOffered, applicationStatus(t, applied.ApplicationID))

	_, err = svc.Evaluate(ctx, models.EvaluationRequest{
		ApplicationID: applied.ApplicationID, CompanyID: companyID, NextStatus: "rejected",
	})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))

	var notes int
	require.NoError(t, pg.DB.QueryRow(
		`SELECT COUNT(*) FROM notifications n JOIN students s ON s.user_id = n.user_id WHERE s.id = $1`, studentID,
	).Scan(&notes))
	assert.Equal(t, 4, notes, "applied, test received, interview, offer")

	results, err := svc.ListTestResults(ctx, companyID, created.JobID)
	require.NoError(t, err)
	require.Equal(t, 1, results.Total)
	assert.Equal(t, studentID, results.Results[0].StudentID)
}

func TestCapacityUnderConcurrentApplies(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	svc := newService(t)
	companyID := seedCompany(t)

	created, err := svc.CreateJob(ctx, models.JobCreateRequest{
		CompanyID: companyID,
		Job:       models.JobFields{Title: "Data Analyst", MaxApplicants: 2},
	})
	require.NoError(t, err)

	students := make([]string, 8)
	for i := range students {
		students[i] = seedStudent(t)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for _, studentID := range students {
		wg.Add(1)
		go func(studentID string) {
			defer wg.Done()
			_, err := svc.Apply(ctx, studentID, created.JobID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, errors.ErrCodeCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected apply error: %v", err)
			}
		}(studentID)
	}
	wg.Wait()

	assert.Equal(t, 2, accepted)
	assert.Equal(t, 6, rejected)

	var count int
	var status string
	require.NoError(t, pg.DB.QueryRow(`SELECT COUNT(*) FROM applications WHERE job_id = $1`, created.JobID).Scan(&count))
	require.NoError(t, pg.DB.QueryRow(`SELECT status FROM jobs WHERE id = $1`, created.JobID).Scan(&status))
	assert.Equal(t, 2, count)
	assert.Equal(t, string(models.JobClosed), status)
}

func TestUpdateJobReopensAfterCapacityClose(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	svc := newService(t)
	companyID := seedCompany(t)

	created, err := svc.CreateJob(ctx, models.JobCreateRequest{
		CompanyID: companyID,
		Job:       models.JobFields{Title: "QA Intern", MaxApplicants: 1},
	})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, seedStudent(t), created.JobID)
	require.NoError(t, err)

	limit := 2
	updated, err := svc.UpdateJob(ctx, models.JobUpdateRequest{CompanyID: companyID, JobID: created.JobID, MaxApplicants: &limit})
	require.NoError(t, err)
	assert.True(t, updated.Reopened)
	assert.Equal(t, models.JobOpen, updated.Status)

	_, err = svc.Apply(ctx, seedStudent(t), created.JobID)
	require.NoError(t, err)
	var status string
	require.NoError(t, pg.DB.QueryRow(`SELECT status FROM jobs WHERE id = $1`, created.JobID).Scan(&status))
	assert.Equal(t, string(models.JobClosed), status)

	_, err = svc.Apply(ctx, seedStudent(t), "not-a-uuid")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
