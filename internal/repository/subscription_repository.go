package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.DB.Create(sub).Error
}

func (r *SubscriptionRepository) FindActiveByUser(userID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.DB.Where("user_id = ? AND valid_until > ?", userID, time.Now()).
		Order("valid_until desc").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) ListByUser(userID uint) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) CreateRequest(req *model.AccessRequest) error {
	return r.DB.Create(req).Error
}

func (r *SubscriptionRepository) FindRequestByID(id uint) (*model.AccessRequest, error) {
	var req model.AccessRequest
	if err := r.DB.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SubscriptionRepository) UpdateRequest(req *model.AccessRequest) error {
	return r.DB.Save(req).Error
}

func (r *SubscriptionRepository) ListRequests(status model.AccessRequestStatus, page, limit int) ([]model.AccessRequest, int64, error) {
	query := r.DB.Model(&model.AccessRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.AccessRequest
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *SubscriptionRepository) HasPendingRequest(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.AccessRequest{}).
		Where("user_id = ? AND status = ?", userID, model.AccessPending).
		Count(&count).Error
	return count > 0, err
}
