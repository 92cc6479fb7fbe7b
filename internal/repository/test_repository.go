package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) CreateTest(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindTestByID(id string) (*model.Test, error) {
	var test model.Test
	if err := r.DB.First(&test, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) UpdateTest(test *model.Test) error {
	return r.DB.Save(test).Error
}

// DeleteTest removes the test and its questions. Historical attempts are kept
// on purpose; they just can no longer be joined back to a test.
func (r *TestRepository) DeleteTest(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, "id = ?", id).Error
	})
}

type TestListRow struct {
	model.Test
	QuestionCount int `json:"questionCount"`
	AttemptCount  int `json:"attemptCount"`
}

func (r *TestRepository) ListTests(page, limit int) ([]TestListRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Test{}).Where("deleted_at IS NULL").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []TestListRow
	query := r.DB.Table("tests t").
		Select("t.*, " +
			"(SELECT COUNT(*) FROM questions q WHERE q.test_id = t.id AND q.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM test_attempts a WHERE a.test_id = t.id AND a.deleted_at IS NULL AND a.status = 'submitted') as attempt_count").
		Where("t.deleted_at IS NULL")

	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	err := query.Order("t.created_at desc").Scan(&tests).Error
	return tests, total, err
}

func (r *TestRepository) ListQuestions(testID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("test_id = ?", testID).Order("`order` asc, created_at asc").Find(&questions).Error
	return questions, err
}

// ReplaceQuestions swaps the full question set of a test. The new set is
// inserted first and superseded rows are deleted afterwards, so a failure
// mid-way never leaves the test without questions.
func (r *TestRepository) ReplaceQuestions(testID string, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		keep := make([]string, 0, len(questions))
		for i := range questions {
			questions[i].TestID = testID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
			keep = append(keep, questions[i].ID)
		}

		stale := tx.Where("test_id = ?", testID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		return stale.Delete(&model.Question{}).Error
	})
}

func (r *TestRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Test{}).Count(&count).Error
	return count, err
}
