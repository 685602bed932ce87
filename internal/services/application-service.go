package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/dto"
	"github.com/ss-immigration/application_service/internal/errs"
	"github.com/ss-immigration/application_service/internal/helper/utils"
	"github.com/ss-immigration/application_service/internal/interfaces"
	"github.com/ss-immigration/application_service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ApplicationService interface {
	Submit(actor *domain.User, input dto.SubmitApplicationRequest) (*domain.Application, error)
	Get(actor *domain.User, id uint) (*domain.Application, error)
	List(actor *domain.User) ([]domain.Application, error)

	AttachPaymentProof(actor *domain.User, id uint, filename string, file io.ReadSeeker) (*domain.Application, error)

	VerifyPayment(actor *domain.User, id uint) (*domain.Application, error)
	RejectPayment(actor *domain.User, id uint, reason string) (*domain.Application, error)
	Approve(actor *domain.User, id uint) (*domain.Application, error)
	Reject(actor *domain.User, id uint, reason string) (*domain.Application, error)
	UpdateStatus(actor *domain.User, id uint, status string) (*domain.Application, error)

	Statistics(actor *domain.User) (*dto.StatisticsResponse, error)
}

type applicationService struct {
	repo     repository.ApplicationRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
	docs     interfaces.DocumentGenerator
	logger   *zap.Logger
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
	docs interfaces.DocumentGenerator,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		repo:     repo,
		uploader: uploader,
		producer: producer,
		docs:     docs,
		logger:   logger,
	}
}

func (s *applicationService) Submit(actor *domain.User, input dto.SubmitApplicationRequest) (*domain.Application, error) {
	if actor == nil || actor.ID == 0 {
		return nil, errs.Permission("unauthorized")
	}

	appType := domain.ApplicationType(strings.TrimSpace(input.ApplicationType))
	if !appType.Valid() {
		return nil, errs.Validation("application_type", "invalid application type")
	}

	required := []struct {
		field string
		value string
	}{
		{"first_name", input.FirstName},
		{"last_name", input.LastName},
		{"date_of_birth", input.DateOfBirth},
		{"gender", input.Gender},
		{"nationality", input.Nationality},
		{"father_name", input.FatherName},
		{"mother_name", input.MotherName},
		{"marital_status", input.MaritalStatus},
		{"phone_number", input.PhoneNumber},
		{"email", input.Email},
		{"country", input.Country},
		{"state", input.State},
		{"city", input.City},
		{"place_of_residence", input.PlaceOfResidence},
		{"birth_country", input.BirthCountry},
		{"birth_state", input.BirthState},
		{"birth_city", input.BirthCity},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, errs.Validation(f.field, "is required")
		}
	}

	dob, err := time.Parse("2006-01-02", strings.TrimSpace(input.DateOfBirth))
	if err != nil {
		return nil, errs.Validation("date_of_birth", "must be a date in YYYY-MM-DD format")
	}

	fee := domain.FeeFor(appType)
	app := &domain.Application{
		UserID:          actor.ID,
		ApplicationType: appType,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentAmount:   &fee,

		FirstName:        strings.TrimSpace(input.FirstName),
		MiddleName:       input.MiddleName,
		LastName:         strings.TrimSpace(input.LastName),
		DateOfBirth:      dob,
		Gender:           strings.TrimSpace(strings.ToLower(input.Gender)),
		Nationality:      strings.TrimSpace(input.Nationality),
		NationalIDNumber: input.NationalIDNumber,
		FatherName:       strings.TrimSpace(input.FatherName),
		MotherName:       strings.TrimSpace(input.MotherName),
		MaritalStatus:    strings.TrimSpace(strings.ToLower(input.MaritalStatus)),
		Profession:       input.Profession,

		PhoneNumber:      strings.TrimSpace(input.PhoneNumber),
		Email:            strings.TrimSpace(strings.ToLower(input.Email)),
		Country:          strings.TrimSpace(input.Country),
		State:            strings.TrimSpace(input.State),
		City:             strings.TrimSpace(input.City),
		PlaceOfResidence: strings.TrimSpace(input.PlaceOfResidence),

		BirthCountry: strings.TrimSpace(input.BirthCountry),
		BirthState:   strings.TrimSpace(input.BirthState),
		BirthCity:    strings.TrimSpace(input.BirthCity),

		PassportType:       input.PassportType,
		TravelPurpose:      input.TravelPurpose,
		DestinationCountry: input.DestinationCountry,
		DestinationCity:    input.DestinationCity,
		ReplacementReason:  input.ReplacementReason,

		PhotoURL:            input.PhotoURL,
		IDCopyURL:           input.IDCopyURL,
		SignatureURL:        input.SignatureURL,
		BirthCertificateURL: input.BirthCertificateURL,
		OldDocumentURL:      input.OldDocumentURL,
		PoliceReportURL:     input.PoliceReportURL,
		CivilRegistryNumber: input.CivilRegistryNumber,
	}

	app.ConfirmationNumber = utils.GenerateConfirmationNumber(s.repo.ExistsByConfirmationNumber)

	if err := s.repo.Create(app); err != nil {
		return nil, err
	}

	s.publish(dto.EventApplicationReceived, app, "")
	return app, nil
}

func (s *applicationService) Get(actor *domain.User, id uint) (*domain.Application, error) {
	return s.load(actor, id)
}

func (s *applicationService) List(actor *domain.User) ([]domain.Application, error) {
	if actor == nil || actor.ID == 0 {
		return nil, errs.Permission("unauthorized")
	}
	if domain.IsStaff(actor.Role) {
		return s.repo.ListAll(100, 0)
	}
	return s.repo.ListByUserID(actor.ID)
}

// AttachPaymentProof fingerprints the uploaded receipt and rejects reuse of a
// receipt already credited to another application, then stores the file. A
// fingerprint read failure is a named fail-open: the upload proceeds with the
// hash unset rather than blocking the applicant.
func (s *applicationService) AttachPaymentProof(actor *domain.User, id uint, filename string, file io.ReadSeeker) (*domain.Application, error) {
	app, err := s.load(actor, id)
	if err != nil {
		return nil, err
	}

	hash, err := utils.Fingerprint(file)
	if err != nil {
		s.logger.Warn("receipt fingerprint failed, duplicate check skipped",
			zap.Uint("application_id", app.ID),
			zap.Error(err),
		)
		hash = ""
	}

	// Only re-check when the fingerprint actually changed; re-saving the same
	// receipt must not collide with itself.
	if hash != "" && (app.PaymentProofHash == nil || *app.PaymentProofHash != hash) {
		dup, err := s.repo.FindOtherByProofHash(hash, app.ID)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, errs.DuplicateReceipt(dup.ConfirmationNumber)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	url, err := s.uploader.Upload(ctx, "immigration/payment_proofs", filename, file)
	if err != nil {
		return nil, fmt.Errorf("upload payment proof: %w", err)
	}

	app.PaymentProofURL = &url
	if hash != "" {
		app.PaymentProofHash = &hash
	}

	if err := s.repo.Save(app); err != nil {
		// Two uploads of the same receipt can race past the lookup above; the
		// unique index on the hash column is authoritative and the violation
		// maps to the same duplicate error the pre-check produces.
		if errors.Is(err, gorm.ErrDuplicatedKey) && hash != "" {
			if dup, lookupErr := s.repo.FindOtherByProofHash(hash, app.ID); lookupErr == nil && dup != nil {
				return nil, errs.DuplicateReceipt(dup.ConfirmationNumber)
			}
			return nil, errs.DuplicateReceipt("another application")
		}
		return nil, err
	}

	return app, nil
}

func (s *applicationService) VerifyPayment(actor *domain.User, id uint) (*domain.Application, error) {
	app, err := s.loadForTransition(actor, id, domain.TransitionVerifyPayment)
	if err != nil {
		return nil, err
	}

	if app.PaymentProofURL == nil {
		return nil, errs.Validation("payment", "no payment proof submitted")
	}

	now := time.Now()
	app.PaymentStatus = domain.PaymentCompleted
	app.PaymentVerifiedBy = &actor.ID
	app.PaymentVerifiedAt = &now
	app.PaymentDate = &now

	if err := s.repo.Save(app); err != nil {
		return nil, err
	}

	s.publish(dto.EventPaymentVerified, app, "")
	return app, nil
}

func (s *applicationService) RejectPayment(actor *domain.User, id uint, reason string) (*domain.Application, error) {
	app, err := s.loadForTransition(actor, id, domain.TransitionRejectPayment)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	now := time.Now()
	app.PaymentStatus = domain.PaymentFailed
	app.PaymentRejectionReason = &reason
	app.PaymentVerifiedBy = &actor.ID
	app.PaymentVerifiedAt = &now

	if err := s.repo.Save(app); err != nil {
		return nil, err
	}

	s.publish(dto.EventPaymentRejected, app, reason)
	return app, nil
}

// Approve moves the application to approved. The approval itself is the
// durable fact: generating and storing the approval document is best-effort,
// and a failure there leaves the reference unset without rolling anything
// back.
func (s *applicationService) Approve(actor *domain.User, id uint) (*domain.Application, error) {
	app, err := s.loadForTransition(actor, id, domain.TransitionApprove)
	if err != nil {
		return nil, err
	}

	if app.PaymentStatus != domain.PaymentCompleted {
		return nil, errs.Validation("payment_status", "payment not completed, please verify payment first")
	}

	now := time.Now()
	app.Status = domain.StatusApproved
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now

	if pdfBytes, genErr := s.docs.ApprovalPDF(app); genErr != nil {
		s.logger.Error("approval document generation failed",
			zap.Uint("application_id", app.ID),
			zap.Error(genErr),
		)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		filename := fmt.Sprintf("application-%s.pdf", app.ConfirmationNumber)
		url, upErr := s.uploader.Upload(ctx, "immigration/approved_pdfs", filename, bytes.NewReader(pdfBytes))
		if upErr != nil {
			s.logger.Error("approval document upload failed",
				zap.Uint("application_id", app.ID),
				zap.Error(upErr),
			)
		} else {
			app.ApprovedPDFURL = &url
		}
	}

	if err := s.repo.Save(app); err != nil {
		return nil, err
	}

	s.publish(dto.EventApplicationApproved, app, "")
	return app, nil
}

func (s *applicationService) Reject(actor *domain.User, id uint, reason string) (*domain.Application, error) {
	app, err := s.loadForTransition(actor, id, domain.TransitionReject)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	now := time.Now()
	app.Status = domain.StatusRejected
	app.RejectionReason = &reason
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now

	if err := s.repo.Save(app); err != nil {
		return nil, err
	}

	s.publish(dto.EventApplicationRejected, app, reason)
	return app, nil
}

// UpdateStatus is the administrative override: any status in the enum, no
// payment-completion guard.
func (s *applicationService) UpdateStatus(actor *domain.User, id uint, status string) (*domain.Application, error) {
	app, err := s.loadForTransition(actor, id, domain.TransitionUpdateStatus)
	if err != nil {
		return nil, err
	}

	newStatus := domain.ApplicationStatus(strings.TrimSpace(strings.ToLower(status)))
	if !newStatus.Valid() {
		return nil, errs.Validation("status", "invalid status")
	}

	now := time.Now()
	app.Status = newStatus
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now

	if err := s.repo.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Statistics(actor *domain.User) (*dto.StatisticsResponse, error) {
	if actor == nil || !domain.Allowed(actor.Role, domain.TransitionViewStatistics) {
		return nil, errs.Permission("permission denied")
	}

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CountByType()
	if err != nil {
		return nil, err
	}

	return &dto.StatisticsResponse{
		Total:    total,
		ByStatus: byStatus,
		ByType:   byType,
	}, nil
}

// load fetches an application and enforces ownership: applicants only see
// their own records, and a foreign record reads as not-found rather than
// forbidden.
func (s *applicationService) load(actor *domain.User, id uint) (*domain.Application, error) {
	if actor == nil || actor.ID == 0 {
		return nil, errs.Permission("unauthorized")
	}

	app, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application")
		}
		return nil, err
	}

	if !domain.IsStaff(actor.Role) && app.UserID != actor.ID {
		return nil, errs.NotFound("application")
	}
	return app, nil
}

func (s *applicationService) loadForTransition(actor *domain.User, id uint, t domain.Transition) (*domain.Application, error) {
	if actor == nil || !domain.Allowed(actor.Role, t) {
		return nil, errs.Permission("permission denied")
	}
	return s.load(actor, id)
}

func (s *applicationService) publish(event string, app *domain.Application, reason string) {
	publishEvent(s.producer, s.logger, event, app, reason)
}

func publishEvent(producer interfaces.ProducerHandler, logger *zap.Logger, event string, app *domain.Application, reason string) {
	if producer == nil {
		return
	}

	ev := dto.ApplicationEvent{
		ApplicationID:      app.ID,
		ConfirmationNumber: app.ConfirmationNumber,
		ApplicationType:    string(app.ApplicationType),
		Status:             string(app.Status),
		Email:              app.Email,
		FirstName:          app.FirstName,
		LastName:           app.LastName,
		Reason:             reason,
		OccurredAt:         time.Now().Format(time.RFC3339),
	}
	if app.ApprovedPDFURL != nil {
		ev.ApprovedPDFURL = *app.ApprovedPDFURL
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Warn("marshal event failed", zap.String("event", event), zap.Error(err))
		return
	}

	if err := producer.PublishMessage([]byte(event), payload); err != nil {
		logger.Warn("publish event failed",
			zap.String("event", event),
			zap.Uint("application_id", app.ID),
			zap.Error(err),
		)
	}
}
