package recruitment

import (
	"context"
	"fmt"
	"testing"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// fillJob applies n students to job-1.
func fillJob(t *testing.T, f *fixture, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("s%d", i+1)
		f.store.addStudent(id)
		_, err := f.service.Apply(context.Background(), id, "job-1")
		require.NoError(t, err)
	}
}

func TestUpdateJobFields(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", Title: "Backend", Location: "Hanoi"})

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1",
		JobID:     "job-1",
		Title:     strPtr(" Backend Engineer "),
		Location:  strPtr("Remote"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.JobOpen, result.Status)
	assert.False(t, result.TestReplaced)
	job := f.store.job("job-1")
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "Backend Engineer", f.index.docs["job-1"].Title)
}

func TestUpdateJobValidationAndOwnership(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1"})

	tests := []struct {
		name string
		req  models.JobUpdateRequest
		code errors.ErrorCode
	}{
		{"empty title", models.JobUpdateRequest{CompanyID: "c1", JobID: "job-1", Title: strPtr("  ")}, errors.ErrCodeValidation},
		{"negative limit", models.JobUpdateRequest{CompanyID: "c1", JobID: "job-1", MaxApplicants: intPtr(-1)}, errors.ErrCodeValidation},
		{"unknown status", models.JobUpdateRequest{CompanyID: "c1", JobID: "job-1", Status: strPtr("archived")}, errors.ErrCodeValidation},
		{"other company", models.JobUpdateRequest{CompanyID: "c2", JobID: "job-1", Title: strPtr("x")}, errors.ErrCodeForbidden},
		{"missing job", models.JobUpdateRequest{CompanyID: "c1", JobID: "missing"}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.UpdateJob(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestUpdateJobRaisingLimitReopensFullJob(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", MaxApplicants: 2})
	fillJob(t, f, 2)
	require.Equal(t, models.JobClosed, f.store.job("job-1").Status)

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", MaxApplicants: intPtr(3),
	})

	require.NoError(t, err)
	assert.True(t, result.Reopened)
	assert.Equal(t, models.JobOpen, result.Status)
	assert.Equal(t, 2, result.Applications)
	assert.Equal(t, models.JobOpen, f.index.docs["job-1"].Status)

	// One more seat, then the gate closes the job again.
	f.store.addStudent("s3")
	_, err = f.service.Apply(context.Background(), "s3", "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobClosed, f.store.job("job-1").Status)
}

func TestUpdateJobKeepsManualCloseWhenLimitRaised(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", MaxApplicants: 5, Status: models.JobClosed})

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", MaxApplicants: intPtr(10),
	})

	require.NoError(t, err)
	assert.False(t, result.Reopened)
	assert.Equal(t, models.JobClosed, result.Status)
}

func TestUpdateJobLimitNeverBelowApplications(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", MaxApplicants: 5})
	fillJob(t, f, 3)

	_, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", MaxApplicants: intPtr(2),
	})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
	assert.Equal(t, 5, f.store.job("job-1").MaxApplicants)

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", MaxApplicants: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobClosed, result.Status, "reaching the limit closes the job")

	_, err = f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", Status: strPtr("open"),
	})
	assert.True(t, errors.Is(err, errors.ErrCodeCapacityExceeded))
	assert.Equal(t, models.JobClosed, f.store.job("job-1").Status)
}

func TestUpdateJobExplicitStatus(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", MaxApplicants: 5})

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", Status: strPtr("Closed"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobClosed, result.Status)

	result, err = f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", Status: strPtr("open"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobOpen, result.Status)
}

func TestUpdateJobReplacesTest(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", Title: "Backend"})
	f.store.addSkillTest(models.SkillTest{ID: "test-1", JobID: "job-1", TestName: "Old", Duration: 20, TotalScore: 10},
		models.Question{ID: "q-old", TestID: "test-1", Content: "Old question"})
	f.cache.entries["job-1"] = models.SkillTestBundle{Test: models.SkillTest{ID: "test-1", JobID: "job-1"}}

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1",
		JobID:     "job-1",
		Test: &models.TestSpec{
			TestName: "Go basics",
			Questions: []models.QuestionSpec{
				{Content: "What is a goroutine?", CorrectAnswer: "lightweight thread"},
				{Content: "Explain channels"},
			},
		},
	})

	require.NoError(t, err)
	assert.True(t, result.TestReplaced)
	assert.Equal(t, "test-1", result.TestID)
	assert.Equal(t, []string{"job-1"}, f.cache.invalidated)

	test, err := f.store.GetSkillTest(context.Background(), "test-1")
	require.NoError(t, err)
	assert.Equal(t, "Go basics", test.TestName)
	assert.Equal(t, 30, test.Duration)
	assert.Equal(t, 100, test.TotalScore)

	questions, err := f.store.ListQuestions(context.Background(), "test-1")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is a goroutine?", questions[0].Content)
	assert.True(t, f.index.docs["job-1"].HasSkillTest)
}

func TestUpdateJobAddsTestToJobWithoutOne(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1", Title: "Backend"})

	result, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
		CompanyID: "c1", JobID: "job-1", Test: &models.TestSpec{},
	})

	require.NoError(t, err)
	require.NotEmpty(t, result.TestID)
	test, err := f.store.FindSkillTestByJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Skill Test", test.TestName)
}

func TestUpdateJobTestReplacementRefused(t *testing.T) {
	t.Run("after applications", func(t *testing.T) {
		f := newFixture(t)
		f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1"})
		fillJob(t, f, 1)

		_, err := f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
			CompanyID: "c1", JobID: "job-1", Title: strPtr("Renamed"), Test: &models.TestSpec{TestName: "Go"},
		})

		assert.True(t, errors.Is(err, errors.ErrCodeConflict))
		assert.Equal(t, "Backend Intern", f.store.job("job-1").Title, "the whole update rolls back")
		_, err = f.store.FindSkillTestByJob(context.Background(), "job-1")
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	})

	t.Run("after submissions", func(t *testing.T) {
		f := newFixture(t)
		f.store.addStudent("s1")
		f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1"})
		f.store.addSkillTest(models.SkillTest{ID: "test-1", JobID: "job-1", TotalScore: 100},
			models.Question{ID: "q1", TestID: "test-1", Content: "Q"})
		_, err := f.service.SubmitTest(context.Background(), models.TestSubmission{TestID: "test-1", StudentID: "s1"})
		require.NoError(t, err)

		_, err = f.service.UpdateJob(context.Background(), models.JobUpdateRequest{
			CompanyID: "c1", JobID: "job-1", Test: &models.TestSpec{TestName: "Go"},
		})

		assert.True(t, errors.Is(err, errors.ErrCodeConflict))
		questions, err := f.store.ListQuestions(context.Background(), "test-1")
		require.NoError(t, err)
		assert.Len(t, questions, 1)
	})
}

func TestListTestResults(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1"})
	f.store.addSkillTest(models.SkillTest{ID: "test-1", JobID: "job-1", TestName: "Go basics", TotalScore: 100})
	for id, score := range map[string]float64{"s1": 60, "s2": 85} {
		f.store.addStudent(id)
		score := score
		_, err := f.service.SubmitTest(context.Background(), models.TestSubmission{TestID: "test-1", StudentID: id, Score: &score})
		require.NoError(t, err)
	}

	list, err := f.service.ListTestResults(context.Background(), "c1", "job-1")

	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "s2", list.Results[0].StudentID)
	assert.Equal(t, 85.0, list.Results[0].Score)
	assert.Equal(t, "Go basics", list.Results[0].TestName)

	_, err = f.service.ListTestResults(context.Background(), "c2", "job-1")
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	_, err = f.service.ListTestResults(context.Background(), "c1", "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestListTestResultsJobWithoutTest(t *testing.T) {
	f := newFixture(t)
	f.store.addJob(models.Job{ID: "job-1", CompanyID: "c1"})

	list, err := f.service.ListTestResults(context.Background(), "c1", "job-1")

	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.NotNil(t, list.Results)
}
