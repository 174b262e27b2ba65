package db_models

import (
	"time"

	"github.com/google/uuid"
)

// PlacementHistory is written once per approval. Only the analytics counters change afterwards.
type PlacementHistory struct {
	RecordModel
	HostelID    uuid.UUID `gorm:"type:uuid;not null;index" json:"hostel_id"`
	RequestID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"request_id"`
	PlanID      uuid.UUID `gorm:"type:uuid;not null;index" json:"plan_id"`
	PlanName    string    `gorm:"size:100;not null" json:"plan_name"`
	StartAt     time.Time `gorm:"not null;index" json:"start_at"`
	EndAt       time.Time `gorm:"not null;index" json:"end_at"`
	AmountMinor int64     `gorm:"not null" json:"amount_minor"`
	Currency    string    `gorm:"size:3;not null" json:"currency"`

	ViewsDuringPeriod            int64 `gorm:"not null;default:0" json:"views_during_period"`
	ContactsRevealedDuringPeriod int64 `gorm:"not null;default:0" json:"contacts_revealed_during_period"`
}

func (PlacementHistory) TableName() string {
	return "placement_histories"
}
