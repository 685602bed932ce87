package interfaces

import "github.com/ss-immigration/application_service/internal/domain"

// DocumentGenerator renders the approval artifact for an approved application.
// Failures are best-effort from the caller's point of view: approval proceeds
// without the document.
type DocumentGenerator interface {
	ApprovalPDF(app *domain.Application) ([]byte, error)
}
