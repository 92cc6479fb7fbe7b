package model

import (
	"encoding/json"
	"errors"
)

const QuestionOptionCount = 4

// Question belongs to exactly one test. Options is a JSON array of
// QuestionOptionCount distinct answer strings; CorrectAnswer must equal one
// of them.
// swagger:model Question
type Question struct {
	UUIDBase
	TestID        string          `gorm:"index;type:varchar(36);not null" json:"testId"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Options       json.RawMessage `gorm:"type:json" json:"options"`
	CorrectAnswer string          `gorm:"size:512;not null" json:"correctAnswer,omitempty"`
	Explanation   string          `gorm:"type:text" json:"explanation,omitempty"`
	Marks         float64         `gorm:"default:1" json:"marks"`
	Order         int             `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionValues decodes the stored options array.
func (q *Question) OptionValues() ([]string, error) {
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// HasOption reports whether v is one of the question's options.
func (q *Question) HasOption(v string) bool {
	opts, err := q.OptionValues()
	if err != nil {
		return false
	}
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

func (q *Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is required")
	}
	opts, err := q.OptionValues()
	if err != nil {
		return errors.New("options must be a JSON array of strings")
	}
	if len(opts) != QuestionOptionCount {
		return errors.New("question must have exactly 4 options")
	}
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o == "" {
			return errors.New("options must be non-empty")
		}
		if seen[o] {
			return errors.New("options must be distinct")
		}
		seen[o] = true
	}
	if !seen[q.CorrectAnswer] {
		return errors.New("correctAnswer must be one of the options")
	}
	if q.Marks <= 0 {
		return errors.New("marks must be positive")
	}
	return nil
}
