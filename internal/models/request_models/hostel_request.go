package request_models

type CreateHostelRequest struct {
	Name           string `json:"name" binding:"required,max=200"`
	City           string `json:"city" binding:"required,max=100"`
	Address        string `json:"address" binding:"omitempty,max=255"`
	ContactPhone   string `json:"contact_phone" binding:"omitempty,max=32"`
	ContactEmail   string `json:"contact_email" binding:"omitempty,email,max=255"`
	WhatsappNumber string `json:"whatsapp_number" binding:"omitempty,max=32"`
}

type ActivateSubscriptionRequest struct {
	Months           int    `json:"months" binding:"gte=1,lte=24"`
	PaymentMethod    string `json:"payment_method" binding:"required,max=50"`
	PaymentReference string `json:"payment_reference" binding:"omitempty,max=120"`
	Notes            string `json:"notes" binding:"omitempty,max=2000"`
}

type CancelSubscriptionRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}
