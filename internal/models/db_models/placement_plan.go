package db_models

type PlacementPlan struct {
	RecordModel
	Code         string  `gorm:"size:50;uniqueIndex;not null" json:"code"` // e.g. "1-day-boost", "1-week-premium"
	Name         string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  *string `json:"description,omitempty"`
	DurationDays int     `gorm:"not null" json:"duration_days"`
	PriceMinor   int64   `gorm:"not null" json:"price_minor"` // 250000 = PKR 2,500.00
	Currency     string  `gorm:"size:3;not null" json:"currency"`
	IsActive     bool    `gorm:"not null;index" json:"is_active"`
}
