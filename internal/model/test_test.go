package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTest() *Test {
	return &Test{
		Title:           "Midterm",
		DurationMinutes: 60,
		TotalMarks:      10,
		PassingMarks:    5,
	}
}

func TestTestValidate(t *testing.T) {
	assert.NoError(t, validTest().Validate())

	missing := validTest()
	missing.Title = ""
	assert.Error(t, missing.Validate())

	zeroDuration := validTest()
	zeroDuration.DurationMinutes = 0
	assert.Error(t, zeroDuration.Validate())

	badPassing := validTest()
	badPassing.PassingMarks = 11
	assert.Error(t, badPassing.Validate())

	start := time.Now()
	end := start.Add(-time.Hour)
	badWindow := validTest()
	badWindow.StartTime = &start
	badWindow.EndTime = &end
	assert.Error(t, badWindow.Validate())
}

func TestTestAvailableAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	open := validTest()
	assert.True(t, open.AvailableAt(now))

	inWindow := validTest()
	inWindow.StartTime = &past
	inWindow.EndTime = &future
	assert.True(t, inWindow.AvailableAt(now))

	notStarted := validTest()
	notStarted.StartTime = &future
	assert.False(t, notStarted.AvailableAt(now))

	ended := validTest()
	ended.EndTime = &past
	assert.False(t, ended.AvailableAt(now))
}

func TestQuestionHasOption(t *testing.T) {
	q := Question{Options: json.RawMessage(`["A","B","C","D"]`)}

	assert.True(t, q.HasOption("A"))
	assert.False(t, q.HasOption("E"))
	assert.False(t, q.HasOption("a"))

	malformed := Question{Options: json.RawMessage(`not json`)}
	assert.False(t, malformed.HasOption("A"))
}

func TestQuestionValidate(t *testing.T) {
	q := Question{
		Text:          "Pick one",
		Options:       json.RawMessage(`["A","B","C","D"]`),
		CorrectAnswer: "A",
		Marks:         1,
	}
	assert.NoError(t, q.Validate())

	q.Marks = 0
	assert.Error(t, q.Validate())
}

func TestAttemptAnswerMapRoundTrip(t *testing.T) {
	attempt := &TestAttempt{}
	assert.Empty(t, attempt.AnswerMap())

	attempt.SetAnswerMap(map[string]string{"q1": "A", "q2": "C"})
	answers := attempt.AnswerMap()
	require.Len(t, answers, 2)
	assert.Equal(t, "A", answers["q1"])

	assert.False(t, attempt.Submitted())
	now := time.Now()
	attempt.SubmittedAt = &now
	assert.True(t, attempt.Submitted())
}
