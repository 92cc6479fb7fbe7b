package service

import (
	"learnhub_backend/internal/repository"
)

// DashboardSummary is the admin landing-page counter block.
type DashboardSummary struct {
	Users              int64 `json:"users"`
	Courses            int64 `json:"courses"`
	Tests              int64 `json:"tests"`
	Attempts           int64 `json:"attempts"`
	AttemptsInProgress int64 `json:"attemptsInProgress"`
}

type DashboardService struct {
	Users    *repository.UserRepository
	Courses  *repository.CourseRepository
	Tests    *repository.TestRepository
	Attempts *repository.AttemptRepository
}

func NewDashboardService(users *repository.UserRepository, courses *repository.CourseRepository, tests *repository.TestRepository, attempts *repository.AttemptRepository) *DashboardService {
	return &DashboardService{Users: users, Courses: courses, Tests: tests, Attempts: attempts}
}

func (s *DashboardService) Summary() (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.Users, err = s.Users.Count(); err != nil {
		return nil, err
	}
	if summary.Courses, err = s.Courses.Count(); err != nil {
		return nil, err
	}
	if summary.Tests, err = s.Tests.Count(); err != nil {
		return nil, err
	}
	if summary.Attempts, err = s.Attempts.Count(); err != nil {
		return nil, err
	}
	if summary.AttemptsInProgress, err = s.Attempts.CountInProgress(); err != nil {
		return nil, err
	}
	return summary, nil
}
