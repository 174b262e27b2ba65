package response_models

import "github.com/google/uuid"

type PlacementPlan struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DurationDays int       `json:"duration_days"`
	PriceMinor   int64     `json:"price_minor"`
	Currency     string    `json:"currency"`
	IsActive     bool      `json:"is_active"`
}
