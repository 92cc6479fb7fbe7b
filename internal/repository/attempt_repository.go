package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.DB.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) Save(attempt *model.TestAttempt) error {
	return r.DB.Save(attempt).Error
}

type AttemptHistoryRow struct {
	model.TestAttempt
	TestTitle string `json:"testTitle"`
}

func (r *AttemptRepository) ListByUser(userID uint) ([]AttemptHistoryRow, error) {
	var rows []AttemptHistoryRow
	err := r.DB.Table("test_attempts a").
		Select("a.*, COALESCE(t.title, '') as test_title").
		Joins("LEFT JOIN tests t ON t.id = a.test_id AND t.deleted_at IS NULL").
		Where("a.user_id = ? AND a.deleted_at IS NULL", userID).
		Order("a.started_at desc").
		Scan(&rows).Error
	return rows, err
}

// LeaderboardRow is a submitted attempt joined with the user's display identity.
type LeaderboardRow struct {
	AttemptID   string    `json:"attemptId"`
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (r *AttemptRepository) SubmittedRows(testID string) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.DB.Table("test_attempts a").
		Select("a.id as attempt_id, a.user_id, u.name as user_name, u.email as user_email, a.score, a.submitted_at").
		Joins("JOIN users u ON u.id = a.user_id").
		Where("a.test_id = ? AND a.status = ? AND a.deleted_at IS NULL", testID, model.AttemptSubmitted).
		Scan(&rows).Error
	return rows, err
}

type AttemptStats struct {
	Total     int64   `json:"total"`
	AvgScore  float64 `json:"avgScore"`
	MaxScore  float64 `json:"maxScore"`
	PassCount int64   `json:"passCount"`
}

func (r *AttemptRepository) Stats(testID string, passingPercent float64) (*AttemptStats, error) {
	var stats AttemptStats
	base := r.DB.Model(&model.TestAttempt{}).
		Where("test_id = ? AND status = ?", testID, model.AttemptSubmitted)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if stats.Total == 0 {
		return &stats, nil
	}

	row := r.DB.Model(&model.TestAttempt{}).
		Select("AVG(score) as avg_score, MAX(score) as max_score").
		Where("test_id = ? AND status = ?", testID, model.AttemptSubmitted).
		Row()
	if err := row.Scan(&stats.AvgScore, &stats.MaxScore); err != nil {
		return nil, err
	}

	err := r.DB.Model(&model.TestAttempt{}).
		Where("test_id = ? AND status = ? AND score >= ?", testID, model.AttemptSubmitted, passingPercent).
		Count(&stats.PassCount).Error
	return &stats, err
}

func (r *AttemptRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestAttempt{}).Count(&count).Error
	return count, err
}

func (r *AttemptRepository) CountInProgress() (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestAttempt{}).
		Where("status = ?", model.AttemptInProgress).
		Count(&count).Error
	return count, err
}
