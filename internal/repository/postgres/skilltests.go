package postgres

import (
	"context"

	apperrors "recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/models"

	"github.com/lib/pq"
)

const skillTestColumns = `id, job_id, test_name, duration, total_score, created_at`

func scanSkillTest(row interface{ Scan(...interface{}) error }) (*models.SkillTest, error) {
	var t models.SkillTest
	err := row.Scan(&t.ID, &t.JobID, &t.TestName, &t.Duration, &t.TotalScore, &t.CreatedAt)
	return &t, err
}

func (r *Repo) FindSkillTestByJob(ctx context.Context, jobID string) (*models.SkillTest, error) {
	test, err := scanSkillTest(r.q.QueryRowContext(ctx, `SELECT `+skillTestColumns+` FROM skill_tests WHERE job_id = $1`, jobID))
	if err != nil {
		return nil, rowError("skill test", "job "+jobID, "find skill test", err)
	}
	return test, nil
}

func (r *Repo) GetSkillTest(ctx context.Context, testID string) (*models.SkillTest, error) {
	test, err := scanSkillTest(r.q.QueryRowContext(ctx, `SELECT `+skillTestColumns+` FROM skill_tests WHERE id = $1`, testID))
	if err != nil {
		return nil, rowError("skill test", testID, "get skill test", err)
	}
	return test, nil
}

func (r *Repo) InsertSkillTest(ctx context.Context, test *models.SkillTest) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO skill_tests (`+skillTestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		test.ID, test.JobID, test.TestName, test.Duration, test.TotalScore, test.CreatedAt,
	)
	if err != nil {
		return execError("insert skill test", err)
	}
	return nil
}

func (r *Repo) UpdateSkillTest(ctx context.Context, test *models.SkillTest) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE skill_tests SET test_name = $1, duration = $2, total_score = $3 WHERE id = $4`,
		test.TestName, test.Duration, test.TotalScore, test.ID,
	)
	if err != nil {
		return execError("update skill test", err)
	}
	return expectOne(res, "skill test", test.ID, "update skill test")
}

func (r *Repo) ListQuestions(ctx context.Context, testID string) ([]models.Question, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, test_id, content, options, correct_answer
		FROM questions WHERE test_id = $1 ORDER BY position, id`, testID)
	if err != nil {
		return nil, queryError("list questions", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var options []string
		if err := rows.Scan(&q.ID, &q.TestID, &q.Content, pq.Array(&options), &q.CorrectAnswer); err != nil {
			return nil, apperrors.NewDatabaseError("scan question", err)
		}
		if options == nil {
			options = []string{}
		}
		q.Options = options
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list questions", err)
	}
	return questions, nil
}

// InsertQuestion appends the question after the test's existing ones.
func (r *Repo) InsertQuestion(ctx context.Context, q *models.Question) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO questions (id, test_id, position, content, options, correct_answer)
		VALUES ($1, $2, (SELECT COUNT(*) FROM questions WHERE test_id = $2), $3, $4, $5)`,
		q.ID, q.TestID, q.Content, pq.Array(q.Options), q.CorrectAnswer,
	)
	if err != nil {
		return execError("insert question", err)
	}
	return nil
}

func (r *Repo) DeleteQuestions(ctx context.Context, testID string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM questions WHERE test_id = $1`, testID); err != nil {
		return execError("delete questions", err)
	}
	return nil
}

func (r *Repo) FindTestResult(ctx context.Context, studentID, testID string) (*models.TestResult, error) {
	var res models.TestResult
	err := r.q.QueryRowContext(ctx, `
		SELECT id, test_id, student_id, score, answers, submitted_at
		FROM test_results WHERE student_id = $1 AND test_id = $2`, studentID, testID).
		Scan(&res.ID, &res.TestID, &res.StudentID, &res.Score, &res.Answers, &res.SubmittedAt)
	if err != nil {
		return nil, rowError("test result", studentID+"/"+testID, "find test result", err)
	}
	return &res, nil
}

func (r *Repo) InsertTestResult(ctx context.Context, result *models.TestResult) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO test_results (id, test_id, student_id, score, answers, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID, result.TestID, result.StudentID, result.Score, result.Answers, result.SubmittedAt,
	)
	if err != nil {
		return execError("insert test result", err)
	}
	return nil
}

func (r *Repo) ListTestResults(ctx context.Context, jobID string) ([]models.TestResultSummary, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT tr.id, s.id, s.full_name, t.test_name, tr.score, tr.submitted_at
		FROM test_results tr
		JOIN skill_tests t ON t.id = tr.test_id
		JOIN students s ON s.id = tr.student_id
		WHERE t.job_id = $1
		ORDER BY tr.score DESC, tr.submitted_at`, jobID)
	if err != nil {
		return nil, queryError("list test results", err)
	}
	defer rows.Close()

	results := []models.TestResultSummary{}
	for rows.Next() {
		var res models.TestResultSummary
		if err := rows.Scan(&res.TestResultID, &res.StudentID, &res.StudentName, &res.TestName, &res.Score, &res.SubmittedAt); err != nil {
			return nil, apperrors.NewDatabaseError("scan test result", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("list test results", err)
	}
	return results, nil
}
