package request_models

type CreatePlanRequest struct {
	Code         string  `json:"code" binding:"required,max=50"`
	Name         string  `json:"name" binding:"required,max=100"`
	Description  *string `json:"description"`
	DurationDays int     `json:"duration_days" binding:"gt=0"`
	PriceMinor   int64   `json:"price_minor" binding:"gte=0"`
	Currency     string  `json:"currency" binding:"omitempty,len=3"`
	IsActive     *bool   `json:"is_active"`
}

// UpdatePlanRequest edits name, description, duration or price. Nil fields are left unchanged.
type UpdatePlanRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string `json:"description"`
	DurationDays *int    `json:"duration_days" binding:"omitempty,gt=0"`
	PriceMinor   *int64  `json:"price_minor" binding:"omitempty,gte=0"`
}

type SetPlanActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
