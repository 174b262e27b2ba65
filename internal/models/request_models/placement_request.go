package request_models

type SubmitPlacementRequest struct {
	HostelID         string `json:"hostel_id" binding:"required,uuid"`
	PlanID           string `json:"plan_id" binding:"required,uuid"`
	ContactName      string `json:"contact_name" binding:"required,max=120"`
	ContactPhone     string `json:"contact_phone" binding:"required,max=32"`
	ContactEmail     string `json:"contact_email" binding:"omitempty,email,max=255"`
	WhatsappNumber   string `json:"whatsapp_number" binding:"omitempty,max=32"`
	PaymentMethod    string `json:"payment_method" binding:"required,max=50"`
	PaymentReference string `json:"payment_reference" binding:"omitempty,max=120"`
	PaymentProofRef  string `json:"payment_proof_ref" binding:"omitempty,max=500"`
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type ReviewPlacementRequest struct {
	Decision   string `json:"decision" binding:"required,oneof=approve reject"`
	AdminNotes string `json:"admin_notes" binding:"omitempty,max=2000"`
}

type SweepRequest struct {
	// At overrides "now"; RFC3339. Used to replay a sweep for a past instant.
	At string `json:"at" binding:"omitempty"`
}
