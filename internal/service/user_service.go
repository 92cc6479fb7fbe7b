package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// UserService covers account administration and subscription access:
// admins list and disable accounts, grant subscriptions, and review the
// access requests students file.
type UserService struct {
	Users         *repository.UserRepository
	Subscriptions *repository.SubscriptionRepository
}

func NewUserService(users *repository.UserRepository, subs *repository.SubscriptionRepository) *UserService {
	return &UserService{Users: users, Subscriptions: subs}
}

func (s *UserService) ListUsers(page, limit int, search string) ([]model.User, int64, error) {
	return s.Users.List(page, limit, search)
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.Users.SetDisabled(userID, disabled)
}

// GrantSubscription gives userID paid access for one month or one year
// starting now. An existing active subscription is extended from its
// current expiry rather than from now.
func (s *UserService) GrantSubscription(userID, grantedBy uint, plan model.SubscriptionPlan) (*model.Subscription, error) {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	start := time.Now()
	if current, err := s.Subscriptions.FindActiveByUser(userID); err == nil && current.Active(start) {
		start = current.ValidUntil
	}

	var until time.Time
	switch plan {
	case model.PlanYearly:
		until = start.AddDate(1, 0, 0)
	default:
		plan = model.PlanMonthly
		until = start.AddDate(0, 1, 0)
	}

	sub := &model.Subscription{
		UserID:     userID,
		Plan:       plan,
		GrantedBy:  grantedBy,
		ValidUntil: until,
	}
	if err := s.Subscriptions.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// HasActiveSubscription reports whether the user can reach premium content.
// Admins bypass the check at the middleware layer, not here.
func (s *UserService) HasActiveSubscription(userID uint) (bool, error) {
	sub, err := s.Subscriptions.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.Active(time.Now()), nil
}

func (s *UserService) RequestAccess(userID uint, message string) (*model.AccessRequest, error) {
	pending, err := s.Subscriptions.HasPendingRequest(userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, util.ErrRequestPending
	}

	req := &model.AccessRequest{
		UserID:  userID,
		Message: message,
		Status:  model.AccessPending,
	}
	if err := s.Subscriptions.CreateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ReviewRequest approves or rejects a pending access request. Approval
// grants a monthly subscription in the same step.
func (s *UserService) ReviewRequest(requestID, reviewerID uint, approve bool) (*model.AccessRequest, error) {
	req, err := s.Subscriptions.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRequestNotFound
		}
		return nil, err
	}
	if req.Status != model.AccessPending {
		return nil, util.ErrRequestNotPending
	}

	now := time.Now()
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now
	if approve {
		req.Status = model.AccessApproved
	} else {
		req.Status = model.AccessRejected
	}

	if err := s.Subscriptions.UpdateRequest(req); err != nil {
		return nil, err
	}
	if approve {
		if _, err := s.GrantSubscription(req.UserID, reviewerID, model.PlanMonthly); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (s *UserService) ListRequests(status model.AccessRequestStatus, page, limit int) ([]model.AccessRequest, int64, error) {
	return s.Subscriptions.ListRequests(status, page, limit)
}

func (s *UserService) ListSubscriptions(userID uint) ([]model.Subscription, error) {
	return s.Subscriptions.ListByUser(userID)
}
