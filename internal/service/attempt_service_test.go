package service

import (
	"encoding/json"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]model.TestAttempt
	nextID   int
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{attempts: make(map[string]model.TestAttempt)}
}

func (f *fakeAttemptStore) Create(attempt *model.TestAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	attempt.ID = fmt.Sprintf("attempt-%d", f.nextID)
	f.attempts[attempt.ID] = *attempt
	return nil
}

func (f *fakeAttemptStore) FindByID(id string) (*model.TestAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attempt, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := attempt
	return &copied, nil
}

func (f *fakeAttemptStore) Save(attempt *model.TestAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[attempt.ID] = *attempt
	return nil
}

func (f *fakeAttemptStore) ListByUser(userID uint) ([]repository.AttemptHistoryRow, error) {
	return nil, nil
}

func (f *fakeAttemptStore) Stats(testID string, passingPercent float64) (*repository.AttemptStats, error) {
	return &repository.AttemptStats{}, nil
}

type fakeTestSource struct {
	tests     map[string]model.Test
	questions map[string][]model.Question
}

func newFakeTestSource() *fakeTestSource {
	return &fakeTestSource{
		tests:     make(map[string]model.Test),
		questions: make(map[string][]model.Question),
	}
}

func (f *fakeTestSource) FindTestByID(id string) (*model.Test, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := test
	return &copied, nil
}

func (f *fakeTestSource) ListQuestions(testID string) ([]model.Question, error) {
	return f.questions[testID], nil
}

func newTestService(t *testing.T) (*AttemptService, *fakeAttemptStore, *fakeTestSource) {
	t.Helper()
	store := newFakeAttemptStore()
	tests := newFakeTestSource()
	svc := NewAttemptService(store, tests)
	// Keep wall-clock ticks out of the way; tests drive monitors directly.
	svc.tickInterval = time.Hour
	t.Cleanup(svc.Shutdown)
	return svc, store, tests
}

func seedTest(tests *fakeTestSource, id string, durationMinutes int, questionCount int) {
	tests.tests[id] = model.Test{
		UUIDBase:        model.UUIDBase{ID: id},
		Title:           "Sample Test",
		DurationMinutes: durationMinutes,
		TotalMarks:      float64(questionCount),
		PassingMarks:    1,
	}
	tests.questions[id] = makeQuestions(questionCount)
}

func TestStartAttemptCreatesInProgress(t *testing.T) {
	svc, store, tests := newTestService(t)
	seedTest(tests, "t1", 30, 4)

	attempt, questions, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	assert.Equal(t, model.AttemptInProgress, attempt.Status)
	assert.Equal(t, uint(7), attempt.UserID)
	assert.Equal(t, 4, attempt.TotalQuestions)
	assert.Nil(t, attempt.SubmittedAt)
	assert.Len(t, questions, 4)

	saved, err := store.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, saved.Status)
}

func TestStartAttemptWithholdsAnswers(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	_, questions, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	raw, err := json.Marshal(questions)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correctAnswer")
	assert.NotContains(t, string(raw), "explanation")
}

func TestStartAttemptUnknownTest(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.StartAttempt(7, "missing")
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestStartAttemptOutsideWindow(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	future := time.Now().Add(time.Hour)
	test := tests.tests["t1"]
	test.StartTime = &future
	tests.tests["t1"] = test

	_, _, err := svc.StartAttempt(7, "t1")
	assert.ErrorIs(t, err, util.ErrTestNotAvailable)
}

func TestRecordAnswerUpserts(t *testing.T) {
	svc, store, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "B"))
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))

	saved, err := store.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"q1": "A"}, saved.AnswerMap())
}

func TestRecordAnswerRejectsForeignOption(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 1)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RecordAnswer(7, attempt.ID, "q1", "E"), util.ErrInvalidAnswer)
	assert.ErrorIs(t, svc.RecordAnswer(7, attempt.ID, "ghost", "A"), util.ErrQuestionNotFound)
}

func TestRecordAnswerOwnershipAndState(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 1)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RecordAnswer(8, attempt.ID, "q1", "A"), util.ErrPermissionDenied)

	_, err = svc.SubmitAttempt(7, attempt.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"), util.ErrAttemptSubmitted)
}

func TestSubmitGradesAndFreezes(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 4)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q2", "A"))
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q3", "B"))

	submitted, err := svc.SubmitAttempt(7, attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, model.AttemptSubmitted, submitted.Status)
	assert.Equal(t, 50.0, submitted.Score)
	assert.Equal(t, 2, submitted.CorrectCount)
	assert.Equal(t, 4, submitted.TotalQuestions)
	require.NotNil(t, submitted.SubmittedAt)
}

func TestSubmitIsIdempotent(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))

	first, err := svc.SubmitAttempt(7, attempt.ID)
	require.NoError(t, err)

	second, err := svc.SubmitAttempt(7, attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.SubmittedAt.Unix(), second.SubmittedAt.Unix())
}

func TestUserSubmitAfterAutoSubmitKeepsFrozenResult(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))

	// Timer path: byUser 0 skips the ownership check.
	auto, err := svc.submit(attempt.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, auto.Score)

	// The racing user submit sees the already-frozen attempt.
	byUser, err := svc.SubmitAttempt(7, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, auto.Score, byUser.Score)
	assert.Equal(t, auto.SubmittedAt.Unix(), byUser.SubmittedAt.Unix())
}

func TestSubmitOwnership(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 1)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(8, attempt.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestAttemptDetailInProgressHidesResults(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))

	detail, err := svc.GetAttemptDetail(7, attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, model.AttemptInProgress, detail.Status)
	assert.Greater(t, detail.RemainingSeconds, 0)
	assert.LessOrEqual(t, detail.RemainingSeconds, 30*60)
	for _, q := range detail.Questions {
		assert.Nil(t, q.CorrectAnswer)
		assert.Nil(t, q.IsCorrect)
	}
}

func TestAttemptDetailSubmittedShowsResults(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))

	_, err = svc.SubmitAttempt(7, attempt.ID)
	require.NoError(t, err)

	detail, err := svc.GetAttemptDetail(7, attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, model.AttemptSubmitted, detail.Status)
	assert.Equal(t, 0, detail.RemainingSeconds)

	byID := make(map[string]AttemptQuestion, len(detail.Questions))
	for _, q := range detail.Questions {
		byID[q.ID] = q
	}

	answered := byID["q1"]
	require.NotNil(t, answered.UserAnswer)
	assert.Equal(t, "A", *answered.UserAnswer)
	require.NotNil(t, answered.IsCorrect)
	assert.True(t, *answered.IsCorrect)

	unanswered := byID["q2"]
	assert.Nil(t, unanswered.UserAnswer)
	require.NotNil(t, unanswered.CorrectAnswer)
	assert.Equal(t, "A", *unanswered.CorrectAnswer)
}

func TestAttemptDetailOwnership(t *testing.T) {
	svc, _, tests := newTestService(t)
	seedTest(tests, "t1", 30, 1)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)

	_, err = svc.GetAttemptDetail(8, attempt.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestMonitorExpiryAutoSubmits(t *testing.T) {
	svc, store, tests := newTestService(t)
	seedTest(tests, "t1", 30, 2)

	attempt, _, err := svc.StartAttempt(7, "t1")
	require.NoError(t, err)
	require.NoError(t, svc.RecordAnswer(7, attempt.ID, "q1", "A"))

	svc.mu.Lock()
	m := svc.monitors[attempt.ID]
	svc.mu.Unlock()
	require.NotNil(t, m)

	m.remaining = 1
	assert.True(t, m.step())

	saved, err := store.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, saved.Status)
	assert.Equal(t, 50.0, saved.Score)
}
