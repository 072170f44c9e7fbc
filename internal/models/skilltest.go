// internal/models/skilltest.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type SkillTest struct {
	ID         string    `json:"id"`
	JobID      string    `json:"jobId"`
	TestName   string    `json:"testName"`
	Duration   int       `json:"duration"` // minutes
	TotalScore int       `json:"totalScore"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Question struct {
	ID            string   `json:"id"`
	TestID        string   `json:"testId"`
	Content       string   `json:"content"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// PublicQuestion is a question as shown to a candidate.
type PublicQuestion struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Options []string `json:"options"`
}

// Public strips the correct answer.
func (q Question) Public() PublicQuestion {
	return PublicQuestion{ID: q.ID, Content: q.Content, Options: q.Options}
}

// Answers maps question id to the candidate's answer text. Stored as JSONB.
type Answers map[string]string

func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *Answers) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*a = Answers{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Answers", src)
	}
	out := Answers{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode answers: %w", err)
	}
	*a = out
	return nil
}

type TestResult struct {
	ID          string    `json:"id"`
	TestID      string    `json:"testId"`
	StudentID   string    `json:"studentId"`
	Score       float64   `json:"score"`
	Answers     Answers   `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// TestResultSummary is one row of a job's test results as listed to the company.
type TestResultSummary struct {
	TestResultID string    `json:"testResultId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	TestName     string    `json:"testName"`
	Score        float64   `json:"score"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// SkillTestBundle is a test with its questions, the unit cached in Redis.
type SkillTestBundle struct {
	Test      SkillTest  `json:"test"`
	Questions []Question `json:"questions"`
}

// TestStart is returned to a candidate opening a test.
type TestStart struct {
	TestID         string           `json:"testId"`
	Message        string           `json:"message"`
	AlreadyStarted bool             `json:"alreadyStarted"`
	TestName       string           `json:"testName"`
	Duration       int              `json:"duration"`
	Questions      []PublicQuestion `json:"questions"`
}

type TestSubmission struct {
	TestID    string   `json:"testId"`
	StudentID string   `json:"studentId"`
	Score     *float64 `json:"score,omitempty"`
	Answers   Answers  `json:"answers"`
}

type SubmitResult struct {
	TestResultID       string `json:"testResultId"`
	ApplicationUpdated bool   `json:"applicationUpdated"`
	ApplicationID      string `json:"applicationId,omitempty"`
}

// AnswerDetail pairs a question with the candidate's answer for company review.
type AnswerDetail struct {
	QuestionID    string   `json:"questionId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Answer        string   `json:"answer"`
}

type TestDetail struct {
	HasTest   bool           `json:"hasTest"`
	Submitted bool           `json:"submitted"`
	Score     float64        `json:"score"`
	Details   []AnswerDetail `json:"details"`
}
