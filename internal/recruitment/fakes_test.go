package recruitment

import (
	"context"
	"sort"
	"sync"

	"recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

type memState struct {
	jobs          map[string]models.Job
	students      map[string]models.Student
	applications  map[string]models.Application
	skillTests    map[string]models.SkillTest
	questions     []models.Question
	testResults   map[string]models.TestResult
	evaluations   []models.Evaluation
	interviews    []models.Interview
	feedback      []models.InterviewFeedback
	offers        []models.Offer
	notifications []models.Notification
	auditLogs     []models.AuditLog
}

func newMemState() *memState {
	return &memState{
		jobs:         map[string]models.Job{},
		students:     map[string]models.Student{},
		applications: map[string]models.Application{},
		skillTests:   map[string]models.SkillTest{},
		testResults:  map[string]models.TestResult{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	for k, v := range s.students {
		c.students[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.skillTests {
		c.skillTests[k] = v
	}
	for k, v := range s.testResults {
		c.testResults[k] = v
	}
	c.questions = append(c.questions, s.questions...)
	c.evaluations = append(c.evaluations, s.evaluations...)
	c.interviews = append(c.interviews, s.interviews...)
	c.feedback = append(c.feedback, s.feedback...)
	c.offers = append(c.offers, s.offers...)
	c.notifications = append(c.notifications, s.notifications...)
	c.auditLogs = append(c.auditLogs, s.auditLogs...)
	return c
}

// memStore is an in-memory Store. Transactions are serialised, which stands in for the
// job and application row locks, and roll back by restoring a snapshot.
type memStore struct {
	txMu  sync.Mutex
	mu    sync.Mutex
	state *memState
	fail  map[string]error
}

var _ repository.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{state: newMemState(), fail: map[string]error{}}
}

func (m *memStore) WithTx(ctx context.Context, fn func(repo repository.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) failure(op string) error {
	return m.fail[op]
}

func resultKey(studentID, testID string) string {
	return studentID + "/" + testID
}

func (m *memStore) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.state.jobs[jobID]
	if !ok {
		return nil, errors.NewNotFoundError("job", jobID)
	}
	return &job, nil
}

func (m *memStore) LockJob(ctx context.Context, jobID string) (*models.Job, error) {
	if err := m.failure("LockJob"); err != nil {
		return nil, err
	}
	return m.GetJob(ctx, jobID)
}

func (m *memStore) CountApplications(ctx context.Context, jobID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.state.applications {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SetJobStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.state.jobs[jobID]
	if !ok {
		return errors.NewNotFoundError("job", jobID)
	}
	job.Status = status
	m.state.jobs[jobID] = job
	return nil
}

func (m *memStore) InsertJob(ctx context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.jobs[job.ID] = *job
	return nil
}

func (m *memStore) UpdateJob(ctx context.Context, job *models.Job) error {
	if err := m.failure("UpdateJob"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.jobs[job.ID]; !ok {
		return errors.NewNotFoundError("job", job.ID)
	}
	m.state.jobs[job.ID] = *job
	return nil
}

func (m *memStore) FindApplication(ctx context.Context, studentID, jobID string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.state.applications {
		if a.StudentID == studentID && a.JobID == jobID {
			app := a
			return &app, nil
		}
	}
	return nil, errors.NewNotFoundError("application", studentID+"/"+jobID)
}

func (m *memStore) GetApplication(ctx context.Context, applicationID string, forUpdate bool) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.state.applications[applicationID]
	if !ok {
		return nil, errors.NewNotFoundError("application", applicationID)
	}
	return &app, nil
}

func (m *memStore) InsertApplication(ctx context.Context, app *models.Application) error {
	if err := m.failure("InsertApplication"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.state.applications {
		if a.StudentID == app.StudentID && a.JobID == app.JobID {
			return errors.NewConflictError("Duplicate application", app.StudentID)
		}
	}
	m.state.applications[app.ID] = *app
	return nil
}

func (m *memStore) UpdateApplicationStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.state.applications[applicationID]
	if !ok {
		return errors.NewNotFoundError("application", applicationID)
	}
	app.Status = status
	m.state.applications[applicationID] = app
	return nil
}

func (m *memStore) FindSkillTestByJob(ctx context.Context, jobID string) (*models.SkillTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.state.skillTests {
		if t.JobID == jobID {
			test := t
			return &test, nil
		}
	}
	return nil, errors.NewNotFoundError("skill test", jobID)
}

func (m *memStore) GetSkillTest(ctx context.Context, testID string) (*models.SkillTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.state.skillTests[testID]
	if !ok {
		return nil, errors.NewNotFoundError("skill test", testID)
	}
	return &t, nil
}

func (m *memStore) InsertSkillTest(ctx context.Context, test *models.SkillTest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.state.skillTests {
		if t.JobID == test.JobID {
			return errors.NewConflictError("Duplicate skill test", test.JobID)
		}
	}
	m.state.skillTests[test.ID] = *test
	return nil
}

func (m *memStore) UpdateSkillTest(ctx context.Context, test *models.SkillTest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.state.skillTests[test.ID]
	if !ok {
		return errors.NewNotFoundError("skill test", test.ID)
	}
	t.TestName, t.Duration, t.TotalScore = test.TestName, test.Duration, test.TotalScore
	m.state.skillTests[test.ID] = t
	return nil
}

func (m *memStore) DeleteQuestions(ctx context.Context, testID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.state.questions[:0:0]
	for _, q := range m.state.questions {
		if q.TestID != testID {
			kept = append(kept, q)
		}
	}
	m.state.questions = kept
	return nil
}

func (m *memStore) ListQuestions(ctx context.Context, testID string) ([]models.Question, error) {
	if err := m.failure("ListQuestions"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Question{}
	for _, q := range m.state.questions {
		if q.TestID == testID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memStore) InsertQuestion(ctx context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.questions = append(m.state.questions, *q)
	return nil
}

func (m *memStore) FindTestResult(ctx context.Context, studentID, testID string) (*models.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.state.testResults[resultKey(studentID, testID)]
	if !ok {
		return nil, errors.NewNotFoundError("test result", resultKey(studentID, testID))
	}
	return &r, nil
}

func (m *memStore) InsertTestResult(ctx context.Context, result *models.TestResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := resultKey(result.StudentID, result.TestID)
	if _, ok := m.state.testResults[key]; ok {
		return errors.NewConflictError("Duplicate test result", key)
	}
	m.state.testResults[key] = *result
	return nil
}

func (m *memStore) ListTestResults(ctx context.Context, jobID string) ([]models.TestResultSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.TestResultSummary{}
	for _, r := range m.state.testResults {
		test, ok := m.state.skillTests[r.TestID]
		if !ok || test.JobID != jobID {
			continue
		}
		out = append(out, models.TestResultSummary{
			TestResultID: r.ID,
			StudentID:    r.StudentID,
			StudentName:  m.state.students[r.StudentID].FullName,
			TestName:     test.TestName,
			Score:        r.Score,
			SubmittedAt:  r.SubmittedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, nil
}

func (m *memStore) InsertEvaluation(ctx context.Context, e *models.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.evaluations = append(m.state.evaluations, *e)
	return nil
}

func (m *memStore) InsertInterview(ctx context.Context, i *models.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.interviews = append(m.state.interviews, *i)
	return nil
}

func (m *memStore) LatestScheduledInterview(ctx context.Context, applicationID string) (*models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.state.interviews) - 1; i >= 0; i-- {
		iv := m.state.interviews[i]
		if iv.ApplicationID == applicationID && iv.Status == models.InterviewScheduled {
			return &iv, nil
		}
	}
	return nil, errors.NewNotFoundError("interview", applicationID)
}

func (m *memStore) CompleteInterview(ctx context.Context, interviewID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.state.interviews {
		if m.state.interviews[i].ID == interviewID {
			m.state.interviews[i].Status = models.InterviewCompleted
			return nil
		}
	}
	return errors.NewNotFoundError("interview", interviewID)
}

func (m *memStore) InsertInterviewFeedback(ctx context.Context, f *models.InterviewFeedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.feedback = append(m.state.feedback, *f)
	return nil
}

func (m *memStore) InsertOffer(ctx context.Context, o *models.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.offers = append(m.state.offers, *o)
	return nil
}

func (m *memStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	if err := m.failure("InsertNotification"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.notifications = append(m.state.notifications, *n)
	return nil
}

func (m *memStore) InsertAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if err := m.failure("InsertAuditLog"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.auditLogs = append(m.state.auditLogs, *entry)
	return nil
}

func (m *memStore) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.students[studentID]
	if !ok {
		return nil, errors.NewNotFoundError("student", studentID)
	}
	return &s, nil
}

// Seed and inspection helpers.

func (m *memStore) addStudent(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.students[id] = models.Student{ID: id, UserID: "user-" + id, FullName: id}
}

func (m *memStore) addJob(job models.Job) {
	if job.Status == "" {
		job.Status = models.JobOpen
	}
	if job.Title == "" {
		job.Title = "Backend Intern"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.jobs[job.ID] = job
}

func (m *memStore) addSkillTest(test models.SkillTest, questions ...models.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.skillTests[test.ID] = test
	m.state.questions = append(m.state.questions, questions...)
}

func (m *memStore) addApplication(app models.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.applications[app.ID] = app
}

func (m *memStore) job(id string) models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.jobs[id]
}

func (m *memStore) applicationsFor(jobID string) []models.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, a := range m.state.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out
}

func (m *memStore) notificationsFor(userID string) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.state.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

type memCache struct {
	mu          sync.Mutex
	entries     map[string]models.SkillTestBundle
	gets        int
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]models.SkillTestBundle{}}
}

func (c *memCache) Get(ctx context.Context, jobID string) (*models.SkillTestBundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.entries[jobID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (c *memCache) Set(ctx context.Context, bundle *models.SkillTestBundle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[bundle.Test.JobID] = *bundle
	return nil
}

func (c *memCache) Invalidate(ctx context.Context, jobID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, jobID)
	c.invalidated = append(c.invalidated, jobID)
	return nil
}

type memIndex struct {
	mu       sync.Mutex
	docs     map[string]models.JobDocument
	closed   []string
	closeErr error
	search   *models.JobSearchResult
	lastLim  int
}

func newMemIndex() *memIndex {
	return &memIndex{docs: map[string]models.JobDocument{}}
}

func (x *memIndex) Index(ctx context.Context, doc models.JobDocument) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.docs[doc.ID] = doc
	return nil
}

func (x *memIndex) MarkClosed(ctx context.Context, jobID string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closeErr != nil {
		return x.closeErr
	}
	x.closed = append(x.closed, jobID)
	return nil
}

func (x *memIndex) SearchOpen(ctx context.Context, query string, limit int) (*models.JobSearchResult, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lastLim = limit
	if x.search != nil {
		return x.search, nil
	}
	return &models.JobSearchResult{Jobs: []models.JobDocument{}}, nil
}
