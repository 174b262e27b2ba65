package response_models

import (
	"time"

	"github.com/google/uuid"

	"hostelhub/internal/models/db_models"
)

type PlacementRequest struct {
	ID               uuid.UUID  `json:"id"`
	HostelID         uuid.UUID  `json:"hostel_id"`
	PlanID           uuid.UUID  `json:"plan_id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	PlanName         string     `json:"plan_name"`
	PlanDurationDays int        `json:"plan_duration_days"`
	Status           string     `json:"status"`
	ContactName      string     `json:"contact_name"`
	ContactPhone     string     `json:"contact_phone"`
	ContactEmail     string     `json:"contact_email,omitempty"`
	WhatsappNumber   string     `json:"whatsapp_number,omitempty"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	PaymentProofRef  string     `json:"payment_proof_ref,omitempty"`
	RequestedAt      time.Time  `json:"requested_at"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy       *uuid.UUID `json:"reviewed_by,omitempty"`
	AdminNotes       string     `json:"admin_notes,omitempty"`
	FeaturedStartAt  *time.Time `json:"featured_start_at,omitempty"`
	FeaturedEndAt    *time.Time `json:"featured_end_at,omitempty"`

	// Derived at read time.
	IsActive      bool   `json:"is_active"`
	DaysRemaining int    `json:"days_remaining"`
	TotalAmount   int64  `json:"total_amount"`
	Currency      string `json:"currency"`
}

func NewPlacementRequest(r *db_models.PlacementRequest, now time.Time) PlacementRequest {
	return PlacementRequest{
		ID:               r.ID,
		HostelID:         r.HostelID,
		PlanID:           r.PlanID,
		OwnerID:          r.OwnerID,
		PlanName:         r.PlanName,
		PlanDurationDays: r.PlanDurationDays,
		Status:           string(r.Status),
		ContactName:      r.ContactName,
		ContactPhone:     r.ContactPhone,
		ContactEmail:     r.ContactEmail,
		WhatsappNumber:   r.WhatsappNumber,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
		PaymentProofRef:  r.PaymentProofRef,
		RequestedAt:      r.RequestedAt,
		ReviewedAt:       r.ReviewedAt,
		ReviewedBy:       r.ReviewedBy,
		AdminNotes:       r.AdminNotes,
		FeaturedStartAt:  r.FeaturedStartAt,
		FeaturedEndAt:    r.FeaturedEndAt,
		IsActive:         r.IsActiveAt(now),
		DaysRemaining:    r.DaysRemaining(now),
		TotalAmount:      r.TotalAmount(),
		Currency:         r.Currency,
	}
}

type FeaturedStatus struct {
	HostelID uuid.UUID `json:"hostel_id"`
	// CachedFlag is Hostel.is_featured as last written by review or sweep.
	CachedFlag bool `json:"cached_flag"`
	// IsFeatured is computed from approved windows at request time.
	IsFeatured       bool       `json:"is_featured"`
	FeaturedUntil    *time.Time `json:"featured_until,omitempty"`
	DaysRemaining    int        `json:"days_remaining"`
	CurrentRequestID *uuid.UUID `json:"current_request_id,omitempty"`
}

type SweepResult struct {
	At          time.Time `json:"at"`
	Transitions int       `json:"transitions"`
}
