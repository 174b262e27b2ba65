package db_models

import (
	"time"

	"github.com/google/uuid"
)

type PlacementStatus string

const (
	PlacementPending  PlacementStatus = "pending"
	PlacementApproved PlacementStatus = "approved"
	PlacementRejected PlacementStatus = "rejected"
	PlacementExpired  PlacementStatus = "expired"
)

func (s PlacementStatus) Valid() bool {
	switch s {
	case PlacementPending, PlacementApproved, PlacementRejected, PlacementExpired:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is legal from s.
func (s PlacementStatus) Terminal() bool {
	return s == PlacementRejected || s == PlacementExpired
}

// CanTransitionTo encodes pending -> {approved, rejected} and approved -> expired.
func (s PlacementStatus) CanTransitionTo(next PlacementStatus) bool {
	switch s {
	case PlacementPending:
		return next == PlacementApproved || next == PlacementRejected
	case PlacementApproved:
		return next == PlacementExpired
	default:
		return false
	}
}

// PlacementRequest is one owner-initiated attempt to feature a hostel.
//
// The partial unique index allows a single pending row per hostel; approved, rejected
// and expired rows accumulate freely.
type PlacementRequest struct {
	RecordModel
	HostelID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_one_pending_per_hostel,where:status = 'pending'" json:"hostel_id"`
	PlanID   uuid.UUID `gorm:"type:uuid;not null;index" json:"plan_id"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	ContactName      string `gorm:"size:120" json:"contact_name"`
	ContactPhone     string `gorm:"size:32" json:"contact_phone"`
	ContactEmail     string `gorm:"size:255" json:"contact_email"`
	WhatsappNumber   string `gorm:"size:32" json:"whatsapp_number"`
	PaymentMethod    string `gorm:"size:50" json:"payment_method"`
	PaymentReference string `gorm:"size:120" json:"payment_reference"`
	PaymentProofRef  string `gorm:"size:500" json:"payment_proof_ref"` // opaque file-storage key

	// Plan snapshot taken at submission.
	PlanName         string `gorm:"size:100;not null" json:"plan_name"`
	PlanDurationDays int    `gorm:"not null" json:"plan_duration_days"`
	PriceMinor       int64  `gorm:"not null" json:"price_minor"`
	Currency         string `gorm:"size:3;not null" json:"currency"`

	Status      PlacementStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	RequestedAt time.Time       `gorm:"not null" json:"requested_at"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
	ReviewedBy  *uuid.UUID      `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	AdminNotes  string          `gorm:"type:text" json:"admin_notes"`

	FeaturedStartAt *time.Time `json:"featured_start_at,omitempty"`
	FeaturedEndAt   *time.Time `gorm:"index" json:"featured_end_at,omitempty"`
}

// IsActiveAt reports whether the request is approved and its window contains now.
// Both bounds are inclusive.
func (r *PlacementRequest) IsActiveAt(now time.Time) bool {
	if r.Status != PlacementApproved || r.FeaturedStartAt == nil || r.FeaturedEndAt == nil {
		return false
	}
	return !now.Before(*r.FeaturedStartAt) && !now.After(*r.FeaturedEndAt)
}

// DaysRemaining returns whole days until the window ends, never negative.
func (r *PlacementRequest) DaysRemaining(now time.Time) int {
	if r.Status != PlacementApproved || r.FeaturedEndAt == nil {
		return 0
	}
	left := r.FeaturedEndAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / (24 * time.Hour))
}

// TotalAmount is the plan price captured at submission.
func (r *PlacementRequest) TotalAmount() int64 {
	return r.PriceMinor
}

// WindowFor returns the featured window for an approval at now.
func (r *PlacementRequest) WindowFor(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, r.PlanDurationDays)
}
