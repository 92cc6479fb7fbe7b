package service

import (
	"encoding/json"
	"learnhub_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionsDefaultsMarks(t *testing.T) {
	reqs := []QuestionReq{{
		Text:          "Pick one",
		Options:       json.RawMessage(`["A","B","C","D"]`),
		CorrectAnswer: "B",
		Order:         1,
	}}

	questions, err := buildQuestions(&reqs)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1.0, questions[0].Marks)
}

func TestBuildQuestionsRejectsInvalid(t *testing.T) {
	cases := map[string]QuestionReq{
		"correct answer not an option": {
			Text:          "Pick one",
			Options:       json.RawMessage(`["A","B","C","D"]`),
			CorrectAnswer: "E",
		},
		"too few options": {
			Text:          "Pick one",
			Options:       json.RawMessage(`["A","B"]`),
			CorrectAnswer: "A",
		},
		"duplicate options": {
			Text:          "Pick one",
			Options:       json.RawMessage(`["A","A","C","D"]`),
			CorrectAnswer: "A",
		},
		"missing text": {
			Options:       json.RawMessage(`["A","B","C","D"]`),
			CorrectAnswer: "A",
		},
	}

	for name, req := range cases {
		reqs := []QuestionReq{req}
		_, err := buildQuestions(&reqs)
		assert.Error(t, err, name)
	}
}

func TestBuildQuestionsNilLeavesSetUntouched(t *testing.T) {
	questions, err := buildQuestions(nil)
	require.NoError(t, err)
	assert.Nil(t, questions)
}

func TestApplyTestReqPartialUpdate(t *testing.T) {
	start := time.Now()
	end := start.Add(2 * time.Hour)
	test := &model.Test{
		Title:           "Original",
		Description:     "Original description",
		DurationMinutes: 30,
		TotalMarks:      10,
		PassingMarks:    5,
	}

	title := "Updated"
	duration := 45
	applyTestReq(test, TestReq{
		Title:           &title,
		DurationMinutes: &duration,
		StartTime:       &start,
		EndTime:         &end,
	})

	assert.Equal(t, "Updated", test.Title)
	assert.Equal(t, 45, test.DurationMinutes)
	assert.Equal(t, "Original description", test.Description)
	assert.Equal(t, 10.0, test.TotalMarks)
	require.NotNil(t, test.StartTime)
	assert.True(t, test.StartTime.Equal(start))
}
