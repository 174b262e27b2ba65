package db_models

import "github.com/google/uuid"

type Hostel struct {
	BaseModel
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Slug           string    `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	City           string    `gorm:"size:100;index" json:"city"`
	Address        string    `gorm:"size:255" json:"address"`
	ContactPhone   string    `gorm:"size:32" json:"contact_phone"`
	ContactEmail   string    `gorm:"size:255" json:"contact_email"`
	WhatsappNumber string    `gorm:"size:32" json:"whatsapp_number"`
	IsVerified     bool      `gorm:"not null" json:"is_verified"`
	IsActive       bool      `gorm:"not null" json:"is_active"`

	// IsFeatured caches "has an approved placement window containing now". Only the
	// review and sweep paths write it; PlacementRequest rows are the source of truth.
	IsFeatured bool `gorm:"not null;index" json:"is_featured"`
}
