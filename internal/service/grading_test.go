package service

import (
	"encoding/json"
	"fmt"
	"learnhub_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			UUIDBase:      model.UUIDBase{ID: fmt.Sprintf("q%d", i+1)},
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       json.RawMessage(`["A","B","C","D"]`),
			CorrectAnswer: "A",
			Marks:         1,
			Order:         i + 1,
		}
	}
	return questions
}

func TestGradeAttemptAllCorrect(t *testing.T) {
	questions := makeQuestions(4)
	answers := map[string]string{"q1": "A", "q2": "A", "q3": "A", "q4": "A"}

	result := GradeAttempt(answers, questions)

	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, 4, result.CorrectCount)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestGradeAttemptNoAnswers(t *testing.T) {
	result := GradeAttempt(map[string]string{}, makeQuestions(3))

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
}

func TestGradeAttemptPartial(t *testing.T) {
	questions := makeQuestions(2)
	answers := map[string]string{"q1": "A", "q2": "B"}

	result := GradeAttempt(answers, questions)

	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, 1, result.CorrectCount)
}

func TestGradeAttemptExactEqualityOnly(t *testing.T) {
	questions := makeQuestions(1)
	// Near misses are still wrong; only the identical string counts.
	for _, selected := range []string{"a", " A", "A ", "B"} {
		result := GradeAttempt(map[string]string{"q1": selected}, questions)
		assert.Equal(t, 0, result.CorrectCount, "selected=%q", selected)
	}
}

func TestGradeAttemptRoundsToTwoDecimals(t *testing.T) {
	questions := makeQuestions(3)
	answers := map[string]string{"q1": "A"}

	result := GradeAttempt(answers, questions)

	// 1/3 of 100 rounds to 33.33.
	assert.Equal(t, 33.33, result.Score)
}

func TestGradeAttemptEmptyQuestionSet(t *testing.T) {
	result := GradeAttempt(map[string]string{}, nil)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
}

func TestGradeAttemptIgnoresUnknownQuestionIDs(t *testing.T) {
	questions := makeQuestions(2)
	answers := map[string]string{"q1": "A", "ghost": "A"}

	result := GradeAttempt(answers, questions)

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalQuestions)
}
