package db_models

import (
	"time"

	"github.com/google/uuid"
)

type HostelView struct {
	RecordModel
	HostelID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"hostel_id"`
	ViewerID  *uuid.UUID `gorm:"type:uuid" json:"viewer_id,omitempty"`
	IPAddress string     `gorm:"size:64" json:"ip_address"`
	UserAgent string     `gorm:"size:255" json:"user_agent"`
	ViewedAt  time.Time  `gorm:"not null;index" json:"viewed_at"`
}

type ContactReveal struct {
	RecordModel
	HostelID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"hostel_id"`
	ViewerID   *uuid.UUID `gorm:"type:uuid" json:"viewer_id,omitempty"`
	IPAddress  string     `gorm:"size:64" json:"ip_address"`
	RevealedAt time.Time  `gorm:"not null;index" json:"revealed_at"`
}
