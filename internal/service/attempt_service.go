package service

import (
	"encoding/json"
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptStore is the persistence surface the engine needs; satisfied by
// repository.AttemptRepository.
type AttemptStore interface {
	Create(attempt *model.TestAttempt) error
	FindByID(id string) (*model.TestAttempt, error)
	Save(attempt *model.TestAttempt) error
	ListByUser(userID uint) ([]repository.AttemptHistoryRow, error)
	Stats(testID string, passingPercent float64) (*repository.AttemptStats, error)
}

// TestSource resolves test definitions and their question sets; satisfied by
// repository.TestRepository.
type TestSource interface {
	FindTestByID(id string) (*model.Test, error)
	ListQuestions(testID string) ([]model.Question, error)
}

// AttemptNotifier receives time-budget events for in-progress attempts.
type AttemptNotifier interface {
	TimeWarning(attemptID string, remainingSeconds int)
}

type logNotifier struct{}

func (logNotifier) TimeWarning(attemptID string, remainingSeconds int) {
	logger.Log.Warn("attempt time budget running out",
		zap.String("attemptId", attemptID),
		zap.Int("remainingSeconds", remainingSeconds))
}

// AttemptService drives the attempt lifecycle: start, record answers, enforce
// the time budget, submit, grade. One countdown monitor runs per in-progress
// attempt; a user submit and a timer auto-submit may race, which submit's
// idempotence makes safe.
type AttemptService struct {
	Attempts AttemptStore
	Tests    TestSource
	Notifier AttemptNotifier

	tickInterval time.Duration

	mu       sync.Mutex
	monitors map[string]*attemptMonitor
	locks    map[string]*sync.Mutex
}

func NewAttemptService(attempts AttemptStore, tests TestSource) *AttemptService {
	return &AttemptService{
		Attempts:     attempts,
		Tests:        tests,
		Notifier:     logNotifier{},
		tickInterval: time.Second,
		monitors:     make(map[string]*attemptMonitor),
		locks:        make(map[string]*sync.Mutex),
	}
}

// StudentQuestion is a question as shown to a test taker: the correct answer
// and explanation are withheld until the attempt is submitted.
type StudentQuestion struct {
	ID      string          `json:"id"`
	Text    string          `json:"text"`
	Options json.RawMessage `json:"options"`
	Marks   float64         `json:"marks"`
	Order   int             `json:"order"`
}

func toStudentQuestion(q model.Question) StudentQuestion {
	return StudentQuestion{
		ID:      q.ID,
		Text:    q.Text,
		Options: q.Options,
		Marks:   q.Marks,
		Order:   q.Order,
	}
}

func toStudentQuestions(questions []model.Question) []StudentQuestion {
	out := make([]StudentQuestion, len(questions))
	for i, q := range questions {
		out[i] = toStudentQuestion(q)
	}
	return out
}

// StartAttempt creates an in-progress attempt and begins its countdown. The
// test's scheduling window, when set, must contain now.
func (s *AttemptService) StartAttempt(userID uint, testID string) (*model.TestAttempt, []StudentQuestion, error) {
	test, err := s.Tests.FindTestByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrTestNotFound
		}
		return nil, nil, err
	}

	now := time.Now()
	if !test.AvailableAt(now) {
		return nil, nil, util.ErrTestNotAvailable
	}

	questions, err := s.Tests.ListQuestions(testID)
	if err != nil {
		return nil, nil, err
	}

	attempt := &model.TestAttempt{
		TestID:         testID,
		UserID:         userID,
		Status:         model.AttemptInProgress,
		StartedAt:      now,
		TotalQuestions: len(questions),
	}
	attempt.SetAnswerMap(map[string]string{})

	if err := s.Attempts.Create(attempt); err != nil {
		return nil, nil, err
	}

	s.startMonitor(attempt.ID, test.DurationMinutes*60)

	return attempt, toStudentQuestions(questions), nil
}

// RecordAnswer upserts one answer into an in-progress attempt. The selected
// option must be one of the question's options.
func (s *AttemptService) RecordAnswer(userID uint, attemptID, questionID, selected string) error {
	lock := s.attemptLock(attemptID)
	lock.Lock()
	defer lock.Unlock()

	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAttemptNotFound
		}
		return err
	}
	if attempt.UserID != userID {
		return util.ErrPermissionDenied
	}
	if attempt.Submitted() {
		return util.ErrAttemptSubmitted
	}

	questions, err := s.Tests.ListQuestions(attempt.TestID)
	if err != nil {
		return err
	}

	var question *model.Question
	for i := range questions {
		if questions[i].ID == questionID {
			question = &questions[i]
			break
		}
	}
	if question == nil {
		return util.ErrQuestionNotFound
	}
	if !question.HasOption(selected) {
		return util.ErrInvalidAnswer
	}

	answers := attempt.AnswerMap()
	answers[questionID] = selected
	attempt.SetAnswerMap(answers)

	return s.Attempts.Save(attempt)
}

// SubmitAttempt finalizes an attempt on behalf of its owner. Submitting an
// already-submitted attempt returns the frozen result instead of an error.
func (s *AttemptService) SubmitAttempt(userID uint, attemptID string) (*model.TestAttempt, error) {
	return s.submit(attemptID, userID)
}

// submit transitions in_progress -> submitted exactly once. byUser == 0 marks
// a timer-driven auto-submit, which skips the ownership check.
func (s *AttemptService) submit(attemptID string, byUser uint) (*model.TestAttempt, error) {
	lock := s.attemptLock(attemptID)
	lock.Lock()
	defer lock.Unlock()

	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if byUser != 0 && attempt.UserID != byUser {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Submitted() {
		return attempt, nil
	}

	questions, err := s.Tests.ListQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}

	result := GradeAttempt(attempt.AnswerMap(), questions)
	now := time.Now()
	attempt.Status = model.AttemptSubmitted
	attempt.SubmittedAt = &now
	attempt.Score = result.Score
	attempt.CorrectCount = result.CorrectCount
	attempt.TotalQuestions = result.TotalQuestions

	if err := s.Attempts.Save(attempt); err != nil {
		return nil, err
	}

	s.cancelMonitor(attemptID)
	return attempt, nil
}

// AttemptQuestion augments a StudentQuestion with the fields that become
// visible once the attempt is submitted.
type AttemptQuestion struct {
	StudentQuestion
	UserAnswer    *string `json:"userAnswer,omitempty"`
	IsCorrect     *bool   `json:"isCorrect,omitempty"`
	CorrectAnswer *string `json:"correctAnswer,omitempty"`
	Explanation   *string `json:"explanation,omitempty"`
}

type AttemptDetail struct {
	ID               string              `json:"id"`
	TestID           string              `json:"testId"`
	TestTitle        string              `json:"testTitle"`
	Status           model.AttemptStatus `json:"status"`
	StartedAt        time.Time           `json:"startedAt"`
	SubmittedAt      *time.Time          `json:"submittedAt,omitempty"`
	RemainingSeconds int                 `json:"remainingSeconds"`
	Score            float64             `json:"score"`
	CorrectCount     int                 `json:"correctCount"`
	TotalQuestions   int                 `json:"totalQuestions"`
	Questions        []AttemptQuestion   `json:"questions"`
}

// GetAttemptDetail returns the attempt as its owner sees it: sanitized
// questions plus remaining time while in progress, full results once
// submitted.
func (s *AttemptService) GetAttemptDetail(userID uint, attemptID string) (*AttemptDetail, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	test, err := s.Tests.FindTestByID(attempt.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	questions, err := s.Tests.ListQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}

	remaining := 0
	if !attempt.Submitted() {
		elapsed := int(time.Since(attempt.StartedAt).Seconds())
		remaining = test.DurationMinutes*60 - elapsed
		if remaining < 0 {
			remaining = 0
		}
	}

	answers := attempt.AnswerMap()
	detailQs := make([]AttemptQuestion, len(questions))
	for i, q := range questions {
		aq := AttemptQuestion{StudentQuestion: toStudentQuestion(q)}
		if attempt.Submitted() {
			if selected, ok := answers[q.ID]; ok {
				userAnswer := selected
				isCorrect := selected == q.CorrectAnswer
				aq.UserAnswer = &userAnswer
				aq.IsCorrect = &isCorrect
			}
			correctAnswer := q.CorrectAnswer
			explanation := q.Explanation
			aq.CorrectAnswer = &correctAnswer
			aq.Explanation = &explanation
		}
		detailQs[i] = aq
	}

	return &AttemptDetail{
		ID:               attempt.ID,
		TestID:           attempt.TestID,
		TestTitle:        test.Title,
		Status:           attempt.Status,
		StartedAt:        attempt.StartedAt,
		SubmittedAt:      attempt.SubmittedAt,
		RemainingSeconds: remaining,
		Score:            attempt.Score,
		CorrectCount:     attempt.CorrectCount,
		TotalQuestions:   attempt.TotalQuestions,
		Questions:        detailQs,
	}, nil
}

func (s *AttemptService) History(userID uint) ([]repository.AttemptHistoryRow, error) {
	return s.Attempts.ListByUser(userID)
}

// Stats aggregates submitted attempts of one test for the admin analytics
// view. The pass threshold is the test's passing marks as a percentage.
func (s *AttemptService) Stats(testID string) (*repository.AttemptStats, error) {
	test, err := s.Tests.FindTestByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	passingPercent := 0.0
	if test.TotalMarks > 0 {
		passingPercent = round2(test.PassingMarks / test.TotalMarks * 100)
	}
	return s.Attempts.Stats(testID, passingPercent)
}

// Shutdown cancels all running countdown monitors.
func (s *AttemptService) Shutdown() {
	s.mu.Lock()
	monitors := make([]*attemptMonitor, 0, len(s.monitors))
	for _, m := range s.monitors {
		monitors = append(monitors, m)
	}
	s.monitors = make(map[string]*attemptMonitor)
	s.mu.Unlock()

	for _, m := range monitors {
		m.cancel()
	}
}

func (s *AttemptService) startMonitor(attemptID string, budgetSeconds int) {
	m := newAttemptMonitor(attemptID, budgetSeconds, s.Notifier.TimeWarning, func(id string) {
		monitoring.AttemptAutoSubmits.Inc()
		if _, err := s.submit(id, 0); err != nil {
			logger.Log.Error("auto-submit failed",
				zap.String("attemptId", id),
				zap.Error(err))
		}
	})

	s.mu.Lock()
	s.monitors[attemptID] = m
	s.mu.Unlock()
	monitoring.ActiveAttempts.Inc()

	go m.run(s.tickInterval)
}

func (s *AttemptService) cancelMonitor(attemptID string) {
	s.mu.Lock()
	m, ok := s.monitors[attemptID]
	if ok {
		delete(s.monitors, attemptID)
	}
	s.mu.Unlock()

	if ok {
		m.cancel()
		monitoring.ActiveAttempts.Dec()
	}
}

func (s *AttemptService) attemptLock(attemptID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[attemptID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[attemptID] = lock
	}
	return lock
}
