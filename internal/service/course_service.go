package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type CourseReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Thumbnail   *string `json:"thumbnail"`
	Premium     *bool   `json:"premium"`
}

type CourseService struct {
	Courses       *repository.CourseRepository
	Subscriptions *repository.SubscriptionRepository
}

func NewCourseService(courses *repository.CourseRepository, subs *repository.SubscriptionRepository) *CourseService {
	return &CourseService{Courses: courses, Subscriptions: subs}
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.Courses.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListCourses(page, limit int, category string) ([]model.Course, int64, error) {
	return s.Courses.List(page, limit, category)
}

func (s *CourseService) CreateCourse(creatorID uint, req CourseReq) (*model.Course, error) {
	course := &model.Course{CreatorID: creatorID}
	applyCourseReq(course, req)
	if course.Title == "" {
		return nil, errors.New("title is required")
	}
	if err := s.Courses.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(id uint, req CourseReq) (*model.Course, error) {
	course, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}
	applyCourseReq(course, req)
	if err := s.Courses.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.Courses.Delete(id)
}

// CanAccess reports whether the user may open the course's content.
// Free courses are open to everyone; premium ones need an admin role or
// an active subscription.
func (s *CourseService) CanAccess(userID uint, role model.UserRole, courseID uint) (bool, error) {
	if courseID == 0 || role == model.Admin {
		return true, nil
	}
	course, err := s.GetCourse(courseID)
	if err != nil {
		return false, err
	}
	if !course.Premium {
		return true, nil
	}

	sub, err := s.Subscriptions.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.Active(time.Now()), nil
}

func applyCourseReq(course *model.Course, req CourseReq) {
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.Premium != nil {
		course.Premium = *req.Premium
	}
}
