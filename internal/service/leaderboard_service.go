package service

import (
	"learnhub_backend/internal/repository"
	"sort"
	"time"
)

const DefaultLeaderboardSize = 10

// LeaderboardSource is satisfied by repository.AttemptRepository.
type LeaderboardSource interface {
	SubmittedRows(testID string) ([]repository.LeaderboardRow, error)
}

// LeaderboardEntry is a ranked, finalized attempt joined with the user's
// display identity.
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	UserID    uint    `json:"userId"`
	UserName  string  `json:"userName"`
	UserEmail string  `json:"userEmail"`
	Score     float64 `json:"score"`
	AttemptID string  `json:"attemptId"`
	// SubmittedAt breaks score ties: the earlier finisher ranks higher.
	SubmittedAt time.Time `json:"submittedAt"`
}

type LeaderboardService struct {
	Attempts LeaderboardSource
}

func NewLeaderboardService(attempts LeaderboardSource) *LeaderboardService {
	return &LeaderboardService{Attempts: attempts}
}

// Rank returns up to limit submitted attempts for the test, ordered by score
// descending with earlier submission winning ties. Recomputed per request.
func (s *LeaderboardService) Rank(testID string, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.Attempts.SubmittedRows(testID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	return rankRows(rows, limit), nil
}

// rankRows orders rows deterministically and truncates to limit. The sort is
// stable so a fixed input set always yields the same output.
func rankRows(rows []repository.LeaderboardRow, limit int) []LeaderboardEntry {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].SubmittedAt.Before(rows[j].SubmittedAt)
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			UserName:    row.UserName,
			UserEmail:   row.UserEmail,
			Score:       row.Score,
			AttemptID:   row.AttemptID,
			SubmittedAt: row.SubmittedAt,
		}
	}
	return entries
}
