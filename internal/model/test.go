package model

import (
	"errors"
	"time"
)

// Test is a timed multiple-choice test definition. StartTime/EndTime form an
// optional availability window; a nil bound is open-ended on that side.
// swagger:model Test
type Test struct {
	UUIDBase
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	CourseID        uint       `gorm:"index;type:bigint unsigned" json:"courseId"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	TotalMarks      float64    `gorm:"default:0" json:"totalMarks"`
	PassingMarks    float64    `gorm:"default:0" json:"passingMarks"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	CreatorID       uint       `gorm:"type:bigint unsigned" json:"creatorId"`
	Questions       []Question `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// Validate rejects malformed definitions before they reach persistence.
func (t *Test) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if t.DurationMinutes <= 0 {
		return errors.New("durationMinutes must be positive")
	}
	if t.PassingMarks <= 0 || t.PassingMarks > t.TotalMarks {
		return errors.New("passingMarks must satisfy 0 < passingMarks <= totalMarks")
	}
	if t.StartTime != nil && t.EndTime != nil && !t.StartTime.Before(*t.EndTime) {
		return errors.New("startTime must be before endTime")
	}
	return nil
}

// AvailableAt reports whether the scheduling window contains now.
func (t *Test) AvailableAt(now time.Time) bool {
	if t.StartTime != nil && now.Before(*t.StartTime) {
		return false
	}
	if t.EndTime != nil && now.After(*t.EndTime) {
		return false
	}
	return true
}
