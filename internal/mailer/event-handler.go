package mailer

import (
	"encoding/json"
	"fmt"

	"github.com/ss-immigration/application_service/internal/dto"
	"go.uber.org/zap"
)

// EventHandler turns lifecycle events from the application service into
// notification emails. Unknown event keys are logged and skipped so a newer
// producer never wedges an older worker.
type EventHandler struct {
	sender Sender
	logger *zap.Logger
}

func NewEventHandler(sender Sender, logger *zap.Logger) *EventHandler {
	return &EventHandler{sender: sender, logger: logger}
}

func (h *EventHandler) HandleMessage(key, value string) error {
	var ev dto.ApplicationEvent
	if err := json.Unmarshal([]byte(value), &ev); err != nil {
		h.logger.Error("invalid event payload", zap.String("key", key), zap.Error(err))
		return err
	}

	if ev.Email == "" {
		h.logger.Warn("event without recipient, skipping",
			zap.String("key", key),
			zap.Uint("application_id", ev.ApplicationID),
		)
		return nil
	}

	subject, body, ok := composeEmail(key, ev)
	if !ok {
		h.logger.Warn("unknown event key, skipping", zap.String("key", key))
		return nil
	}

	if err := h.sender.Send(ev.Email, subject, body); err != nil {
		h.logger.Error("send mail failed",
			zap.String("key", key),
			zap.String("to", ev.Email),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("mail sent",
		zap.String("key", key),
		zap.String("to", ev.Email),
		zap.String("confirmation_number", ev.ConfirmationNumber),
	)
	return nil
}

func composeEmail(key string, ev dto.ApplicationEvent) (subject, body string, ok bool) {
	name := fmt.Sprintf("%s %s", ev.FirstName, ev.LastName)

	switch key {
	case dto.EventApplicationReceived:
		subject = fmt.Sprintf("Application Received - %s", ev.ConfirmationNumber)
		body = fmt.Sprintf(`Dear %s,

Your application has been received and is pending review.

Confirmation Number: %s
Application Type: %s

Please keep this confirmation number for your records. You will be
notified once your application has been reviewed.

Directorate of Nationality, Passports and Immigration
Republic of South Sudan`, name, ev.ConfirmationNumber, ev.ApplicationType)
		return subject, body, true

	case dto.EventApplicationApproved:
		subject = fmt.Sprintf("Application Approved - %s", ev.ConfirmationNumber)
		pdfLine := ""
		if ev.ApprovedPDFURL != "" {
			pdfLine = fmt.Sprintf("\nYour approval form is available at:\n%s\n", ev.ApprovedPDFURL)
		}
		body = fmt.Sprintf(`Dear %s,

Congratulations! Your application %s has been approved.
%s
To collect your document, visit the Immigration Head Office in Juba
with your approval form and original National ID.
Collection hours: Monday-Friday, 8:00 AM - 4:00 PM.

Directorate of Nationality, Passports and Immigration
Republic of South Sudan`, name, ev.ConfirmationNumber, pdfLine)
		return subject, body, true

	case dto.EventApplicationRejected:
		subject = fmt.Sprintf("Application Update - %s", ev.ConfirmationNumber)
		reason := ev.Reason
		if reason == "" {
			reason = "Please contact the immigration office for details."
		}
		body = fmt.Sprintf(`Dear %s,

We regret to inform you that your application %s has been rejected.

Reason: %s

You may submit a new application after addressing the issue above.

Directorate of Nationality, Passports and Immigration
Republic of South Sudan`, name, ev.ConfirmationNumber, reason)
		return subject, body, true

	case dto.EventPaymentVerified:
		subject = fmt.Sprintf("Payment Confirmed - %s", ev.ConfirmationNumber)
		body = fmt.Sprintf(`Dear %s,

Your payment for application %s has been confirmed.
Your application will now proceed to review.

Directorate of Nationality, Passports and Immigration
Republic of South Sudan`, name, ev.ConfirmationNumber)
		return subject, body, true

	case dto.EventPaymentRejected:
		subject = fmt.Sprintf("Payment Issue - %s", ev.ConfirmationNumber)
		reason := ev.Reason
		if reason == "" {
			reason = "The submitted receipt could not be verified."
		}
		body = fmt.Sprintf(`Dear %s,

There was a problem with the payment for application %s.

Reason: %s

Please submit a valid payment receipt to continue processing.

Directorate of Nationality, Passports and Immigration
Republic of South Sudan`, name, ev.ConfirmationNumber, reason)
		return subject, body, true
	}

	return "", "", false
}
