package model

import (
	"encoding/json"
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
)

// TestAttempt records one user's run through a test. Answers maps question id
// to the selected option; unanswered questions are simply absent. Once
// SubmittedAt is set the attempt is frozen.
// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	TestID         string        `gorm:"index;type:varchar(36);not null" json:"testId"`
	UserID         uint          `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Status         AttemptStatus `gorm:"type:enum('in_progress','submitted');default:'in_progress'" json:"status"`
	Answers        string        `gorm:"type:json" json:"-"`
	StartedAt      time.Time     `json:"startedAt"`
	SubmittedAt    *time.Time    `json:"submittedAt,omitempty"`
	Score          float64       `json:"score"`
	CorrectCount   int           `json:"correctCount"`
	TotalQuestions int           `json:"totalQuestions"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

func (a *TestAttempt) Submitted() bool {
	return a.SubmittedAt != nil
}

func (a *TestAttempt) AnswerMap() map[string]string {
	answers := make(map[string]string)
	if a.Answers != "" {
		_ = json.Unmarshal([]byte(a.Answers), &answers)
	}
	return answers
}

func (a *TestAttempt) SetAnswerMap(answers map[string]string) {
	raw, _ := json.Marshal(answers)
	a.Answers = string(raw)
}
