package service

import (
	"learnhub_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLeaderboardSource struct {
	rows []repository.LeaderboardRow
}

func (s staticLeaderboardSource) SubmittedRows(testID string) ([]repository.LeaderboardRow, error) {
	return s.rows, nil
}

func leaderboardRow(attemptID string, userID uint, score float64, submittedAt time.Time) repository.LeaderboardRow {
	return repository.LeaderboardRow{
		AttemptID:   attemptID,
		UserID:      userID,
		UserName:    "user",
		Score:       score,
		SubmittedAt: submittedAt,
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	now := time.Now()
	svc := NewLeaderboardService(staticLeaderboardSource{rows: []repository.LeaderboardRow{
		leaderboardRow("a", 1, 50, now),
		leaderboardRow("b", 2, 100, now),
		leaderboardRow("c", 3, 75, now),
	}})

	entries, err := svc.Rank("t1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []string{"b", "c", "a"}, []string{entries[0].AttemptID, entries[1].AttemptID, entries[2].AttemptID})
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestRankTieBreaksOnEarlierSubmission(t *testing.T) {
	base := time.Now()
	svc := NewLeaderboardService(staticLeaderboardSource{rows: []repository.LeaderboardRow{
		leaderboardRow("late", 1, 80, base.Add(time.Minute)),
		leaderboardRow("early", 2, 80, base),
	}})

	entries, err := svc.Rank("t1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "early", entries[0].AttemptID)
	assert.Equal(t, "late", entries[1].AttemptID)
}

func TestRankTruncatesToLimit(t *testing.T) {
	now := time.Now()
	rows := make([]repository.LeaderboardRow, 15)
	for i := range rows {
		rows[i] = leaderboardRow(string(rune('a'+i)), uint(i+1), float64(100-i), now)
	}
	svc := NewLeaderboardService(staticLeaderboardSource{rows: rows})

	entries, err := svc.Rank("t1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLeaderboardSize)

	entries, err = svc.Rank("t1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 100.0, entries[0].Score)
}

func TestRankEmpty(t *testing.T) {
	svc := NewLeaderboardService(staticLeaderboardSource{})

	entries, err := svc.Rank("t1", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRankIsDeterministic(t *testing.T) {
	now := time.Now()
	rows := []repository.LeaderboardRow{
		leaderboardRow("a", 1, 60, now),
		leaderboardRow("b", 2, 60, now),
		leaderboardRow("c", 3, 60, now),
	}

	first := rankRows(append([]repository.LeaderboardRow(nil), rows...), 10)
	second := rankRows(append([]repository.LeaderboardRow(nil), rows...), 10)

	assert.Equal(t, first, second)
}
