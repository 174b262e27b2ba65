package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationKind string

const (
	NotifyPlacementApproved NotificationKind = "placement_approved"
	NotifyPlacementRejected NotificationKind = "placement_rejected"
)

// Notification is an in-app message for an account. Delivery beyond the inbox is out of scope.
type Notification struct {
	RecordModel
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Kind        NotificationKind `gorm:"type:varchar(40);not null" json:"kind"`
	Title       string           `gorm:"size:200;not null" json:"title"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	Payload     datatypes.JSON   `json:"payload,omitempty"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
}
