package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusPending   SubscriptionStatus = "pending"
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusExpired   SubscriptionStatus = "expired"
	SubStatusCancelled SubscriptionStatus = "cancelled"
)

// CanTransitionTo allows pending -> {active, cancelled}, active -> {active (renewal),
// expired, cancelled} and expired -> active (renewal). Cancelled is terminal.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	switch s {
	case SubStatusPending:
		return next == SubStatusActive || next == SubStatusCancelled
	case SubStatusActive:
		return next == SubStatusActive || next == SubStatusExpired || next == SubStatusCancelled
	case SubStatusExpired:
		return next == SubStatusActive
	default:
		return false
	}
}

// Subscription gates whether a hostel listing may stay public. One row per hostel.
// StartDate and EndDate hold midnight of a business-timezone calendar day.
type Subscription struct {
	RecordModel
	HostelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"hostel_id"`

	Status          SubscriptionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	MonthlyFeeMinor int64              `gorm:"not null" json:"monthly_fee_minor"`
	Currency        string             `gorm:"size:3;not null" json:"currency"`
	StartDate       *time.Time         `json:"start_date,omitempty"`
	EndDate         *time.Time         `gorm:"index" json:"end_date,omitempty"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty"`

	PaymentMethod    string `gorm:"size:50" json:"payment_method"`
	PaymentReference string `gorm:"size:120" json:"payment_reference"`
	Notes            string `gorm:"type:text" json:"notes"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`
}

// IsActive is true iff status is active and the end date is today or later.
// today must already be truncated to a calendar day.
func (s *Subscription) IsActive(today time.Time) bool {
	if s.Status != SubStatusActive || s.EndDate == nil {
		return false
	}
	return !s.EndDate.Before(today)
}

// DaysUntilExpiry is negative once the end date has passed and nil without an end date.
func (s *Subscription) DaysUntilExpiry(today time.Time) *int {
	if s.EndDate == nil {
		return nil
	}
	days := int(s.EndDate.Sub(today).Round(time.Hour) / (24 * time.Hour))
	return &days
}
