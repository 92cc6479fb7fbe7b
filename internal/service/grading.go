package service

import (
	"learnhub_backend/internal/model"
	"math"
)

// GradeResult is the outcome of scoring one attempt.
type GradeResult struct {
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correctCount"`
	TotalQuestions int     `json:"totalQuestions"`
}

// GradeAttempt scores an answer map against the question set. An answer is
// correct only on exact string equality with the question's CorrectAnswer;
// unanswered questions count as incorrect. Score is the correct percentage
// rounded to two decimals.
func GradeAttempt(answers map[string]string, questions []model.Question) GradeResult {
	correct := 0
	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectAnswer {
			correct++
		}
	}

	result := GradeResult{
		CorrectCount:   correct,
		TotalQuestions: len(questions),
	}
	if result.TotalQuestions > 0 {
		result.Score = round2(float64(correct) / float64(result.TotalQuestions) * 100)
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
