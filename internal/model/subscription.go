package model

import "time"

type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanYearly  SubscriptionPlan = "yearly"
)

// Subscription grants a user access to paid content until ValidUntil.
// swagger:model Subscription
type Subscription struct {
	BaseModel
	UserID     uint             `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Plan       SubscriptionPlan `gorm:"type:enum('monthly','yearly');default:'monthly'" json:"plan"`
	GrantedBy  uint             `gorm:"type:bigint unsigned" json:"grantedBy"`
	ValidUntil time.Time        `json:"validUntil"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) Active(now time.Time) bool {
	return now.Before(s.ValidUntil)
}

type AccessRequestStatus string

const (
	AccessPending  AccessRequestStatus = "pending"
	AccessApproved AccessRequestStatus = "approved"
	AccessRejected AccessRequestStatus = "rejected"
)

// AccessRequest is a student's request for subscription access,
// reviewed by an administrator.
// swagger:model AccessRequest
type AccessRequest struct {
	BaseModel
	UserID     uint                `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Message    string              `gorm:"type:text" json:"message"`
	Status     AccessRequestStatus `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	ReviewedBy uint                `gorm:"type:bigint unsigned" json:"reviewedBy"`
	ReviewedAt *time.Time          `json:"reviewedAt,omitempty"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}
