package response_models

import (
	"time"

	"github.com/google/uuid"

	"hostelhub/internal/models/db_models"
)

type Hostel struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	City       string    `json:"city"`
	Address    string    `json:"address,omitempty"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	IsFeatured bool      `json:"is_featured"`
}

func NewHostel(h *db_models.Hostel) Hostel {
	return Hostel{
		ID:         h.ID,
		Name:       h.Name,
		Slug:       h.Slug,
		City:       h.City,
		Address:    h.Address,
		IsVerified: h.IsVerified,
		IsActive:   h.IsActive,
		IsFeatured: h.IsFeatured,
	}
}

type ContactDetails struct {
	HostelID       uuid.UUID `json:"hostel_id"`
	ContactPhone   string    `json:"contact_phone"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	WhatsappNumber string    `json:"whatsapp_number,omitempty"`
}

type Subscription struct {
	HostelID         uuid.UUID  `json:"hostel_id"`
	Status           string     `json:"status"`
	MonthlyFeeMinor  int64      `json:"monthly_fee_minor"`
	Currency         string     `json:"currency"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	IsActive         bool       `json:"is_active"`
	DaysUntilExpiry  *int       `json:"days_until_expiry,omitempty"`
}

func NewSubscription(s *db_models.Subscription, today time.Time) Subscription {
	return Subscription{
		HostelID:         s.HostelID,
		Status:           string(s.Status),
		MonthlyFeeMinor:  s.MonthlyFeeMinor,
		Currency:         s.Currency,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		PaymentMethod:    s.PaymentMethod,
		PaymentReference: s.PaymentReference,
		Notes:            s.Notes,
		IsActive:         s.IsActive(today),
		DaysUntilExpiry:  s.DaysUntilExpiry(today),
	}
}

type NotificationList struct {
	Unread int64                     `json:"unread"`
	Items  []db_models.Notification `json:"items"`
}
