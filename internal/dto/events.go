package dto

// Kafka event keys published by the application service and consumed by the
// mail worker.
const (
	EventApplicationReceived = "application.received"
	EventApplicationApproved = "application.approved"
	EventApplicationRejected = "application.rejected"
	EventPaymentVerified     = "payment.verified"
	EventPaymentRejected     = "payment.rejected"
)

type ApplicationEvent struct {
	ApplicationID      uint   `json:"application_id"`
	ConfirmationNumber string `json:"confirmation_number"`
	ApplicationType    string `json:"application_type"`
	Status             string `json:"status"`
	Email              string `json:"email"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Reason             string `json:"reason,omitempty"`
	ApprovedPDFURL     string `json:"approved_pdf_url,omitempty"`
	OccurredAt         string `json:"occurred_at"`
}
