package service

import (
	"context"
	"encoding/json"
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const testCacheTTL = 10 * time.Minute

type QuestionReq struct {
	Text          string          `json:"text" binding:"required"`
	Options       json.RawMessage `json:"options" binding:"required"`
	CorrectAnswer string          `json:"correctAnswer" binding:"required"`
	Explanation   string          `json:"explanation"`
	Marks         float64         `json:"marks"`
	Order         int             `json:"order"`
}

type TestReq struct {
	Title           *string        `json:"title"`
	Description     *string        `json:"description"`
	CourseID        *uint          `json:"courseId"`
	DurationMinutes *int           `json:"durationMinutes"`
	TotalMarks      *float64       `json:"totalMarks"`
	PassingMarks    *float64       `json:"passingMarks"`
	StartTime       *time.Time     `json:"startTime"`
	EndTime         *time.Time     `json:"endTime"`
	Questions       *[]QuestionReq `json:"questions"`
}

// TestService is the catalog: admin CRUD over test definitions and their
// question sets, with a read-through Redis cache on the hot student path.
type TestService struct {
	Repo  *repository.TestRepository
	Cache *redis.Client
}

func NewTestService(repo *repository.TestRepository, cache *redis.Client) *TestService {
	return &TestService{Repo: repo, Cache: cache}
}

type cachedTest struct {
	Test      model.Test       `json:"test"`
	Questions []model.Question `json:"questions"`
}

// GetTestWithQuestions fetches a test definition and its full question set.
func (s *TestService) GetTestWithQuestions(testID string) (*model.Test, []model.Question, error) {
	if entry := s.cacheGet(testID); entry != nil {
		return &entry.Test, entry.Questions, nil
	}

	test, err := s.Repo.FindTestByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrTestNotFound
		}
		return nil, nil, err
	}
	questions, err := s.Repo.ListQuestions(testID)
	if err != nil {
		return nil, nil, err
	}

	s.cacheSet(testID, &cachedTest{Test: *test, Questions: questions})
	return test, questions, nil
}

func (s *TestService) CreateTest(creatorID uint, req TestReq) (*model.Test, error) {
	test := &model.Test{CreatorID: creatorID}
	applyTestReq(test, req)

	if err := test.Validate(); err != nil {
		return nil, err
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateTest(test); err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		if err := s.Repo.ReplaceQuestions(test.ID, questions); err != nil {
			return nil, err
		}
	}

	s.cacheInvalidate(test.ID)
	return test, nil
}

// UpdateTest applies a partial update. When a question set is supplied it
// replaces the previous set whole: the new questions are inserted before the
// superseded ones are removed.
func (s *TestService) UpdateTest(testID string, req TestReq) (*model.Test, error) {
	test, err := s.Repo.FindTestByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	applyTestReq(test, req)
	if err := test.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateTest(test); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		questions, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.ReplaceQuestions(testID, questions); err != nil {
			return nil, err
		}
	}

	s.cacheInvalidate(testID)
	return test, nil
}

func (s *TestService) DeleteTest(testID string) error {
	if _, err := s.Repo.FindTestByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTestNotFound
		}
		return err
	}
	if err := s.Repo.DeleteTest(testID); err != nil {
		return err
	}
	s.cacheInvalidate(testID)
	return nil
}

func (s *TestService) ListTests(page, limit int) ([]repository.TestListRow, int64, error) {
	return s.Repo.ListTests(page, limit)
}

func applyTestReq(test *model.Test, req TestReq) {
	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.CourseID != nil {
		test.CourseID = *req.CourseID
	}
	if req.DurationMinutes != nil {
		test.DurationMinutes = *req.DurationMinutes
	}
	if req.TotalMarks != nil {
		test.TotalMarks = *req.TotalMarks
	}
	if req.PassingMarks != nil {
		test.PassingMarks = *req.PassingMarks
	}
	if req.StartTime != nil {
		test.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		test.EndTime = req.EndTime
	}
}

func buildQuestions(reqs *[]QuestionReq) ([]model.Question, error) {
	if reqs == nil {
		return nil, nil
	}
	questions := make([]model.Question, 0, len(*reqs))
	for _, qReq := range *reqs {
		q := model.Question{
			Text:          qReq.Text,
			Options:       qReq.Options,
			CorrectAnswer: qReq.CorrectAnswer,
			Explanation:   qReq.Explanation,
			Marks:         qReq.Marks,
			Order:         qReq.Order,
		}
		if q.Marks == 0 {
			q.Marks = 1
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *TestService) cacheKey(testID string) string {
	return "test:questions:" + testID
}

func (s *TestService) cacheGet(testID string) *cachedTest {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(context.Background(), s.cacheKey(testID)).Bytes()
	if err != nil {
		return nil
	}
	var entry cachedTest
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil
	}
	return &entry
}

func (s *TestService) cacheSet(testID string, entry *cachedTest) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	s.Cache.Set(context.Background(), s.cacheKey(testID), raw, testCacheTTL)
}

func (s *TestService) cacheInvalidate(testID string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Del(context.Background(), s.cacheKey(testID))
}
