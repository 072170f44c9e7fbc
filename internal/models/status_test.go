package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ApplicationStatus
		wantErr bool
	}{
		{"testing", StatusTesting, false},
		{"PENDING", StatusPending, false},
		{"  Interview ", StatusInterview, false},
		{"Offered", StatusOffered, false},
		{"rejected", StatusRejected, false},
		{"hired", StatusNone, true},
		{"", StatusNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseApplicationStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplicationStatusScanNormalizesLegacyCasing(t *testing.T) {
	var s ApplicationStatus
	require.NoError(t, s.Scan([]byte("INTERVIEW")))
	assert.Equal(t, StatusInterview, s)

	assert.Error(t, s.Scan("archived"))
	assert.Error(t, s.Scan(nil))
}

func TestApplicationStatusValueRejectsUnknown(t *testing.T) {
	v, err := StatusOffered.Value()
	require.NoError(t, err)
	assert.Equal(t, "offered", v)

	_, err = ApplicationStatus("OFFERED").Value()
	assert.Error(t, err)
}

func TestApplicationStatusJSON(t *testing.T) {
	var payload struct {
		Status ApplicationStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Pending"}`), &payload))
	assert.Equal(t, StatusPending, payload.Status)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"pending"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"status":"unknown"}`), &payload))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusOffered.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusInterview.IsTerminal())
	assert.False(t, StatusTesting.IsTerminal())
}

func TestAnswersScan(t *testing.T) {
	var a Answers
	require.NoError(t, a.Scan([]byte(`{"q1":"A","q2":"B"}`)))
	assert.Equal(t, Answers{"q1": "A", "q2": "B"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	assert.Error(t, a.Scan([]byte(`[1,2]`)))
}

func TestQuestionPublicHidesCorrectAnswer(t *testing.T) {
	q := Question{ID: "q1", TestID: "t1", Content: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"}
	out, err := json.Marshal(q.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "correctAnswer")
}

func TestParseJobStatus(t *testing.T) {
	got, err := ParseJobStatus(" Closed ")
	require.NoError(t, err)
	assert.Equal(t, JobClosed, got)

	got, err = ParseJobStatus("open")
	require.NoError(t, err)
	assert.Equal(t, JobOpen, got)

	_, err = ParseJobStatus("archived")
	assert.Error(t, err)
}
