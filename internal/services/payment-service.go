package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/dto"
	"github.com/ss-immigration/application_service/internal/errs"
	"github.com/ss-immigration/application_service/internal/interfaces"
	"github.com/ss-immigration/application_service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService drives card payments through the hosted gateway checkout, as
// the alternative to uploading a bank or mobile-money receipt for manual
// verification.
type PaymentService interface {
	Initialize(actor *domain.User, input dto.InitializePaymentRequest) (*dto.InitializePaymentResponse, error)
	ConfirmGateway(reference string) (*domain.Application, error)
}

type paymentService struct {
	repo     repository.ApplicationRepository
	gateway  interfaces.PaymentGateway
	producer interfaces.ProducerHandler
	logger   *zap.Logger
}

func NewPaymentService(
	repo repository.ApplicationRepository,
	gateway interfaces.PaymentGateway,
	producer interfaces.ProducerHandler,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  gateway,
		producer: producer,
		logger:   logger,
	}
}

func (s *paymentService) Initialize(actor *domain.User, input dto.InitializePaymentRequest) (*dto.InitializePaymentResponse, error) {
	if actor == nil || actor.ID == 0 {
		return nil, errs.Permission("unauthorized")
	}

	app, err := s.repo.FindByID(input.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application")
		}
		return nil, err
	}
	if app.UserID != actor.ID {
		return nil, errs.NotFound("application")
	}

	if app.PaymentStatus == domain.PaymentCompleted {
		return nil, errs.Validation("payment_status", "payment already completed for this application")
	}

	amount := domain.FeeFor(app.ApplicationType)
	if app.PaymentAmount != nil {
		amount = *app.PaymentAmount
	}

	reference := fmt.Sprintf("PAY-%s-%d", app.ConfirmationNumber, time.Now().Unix())

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	tx, err := s.gateway.InitializeTransaction(ctx, app.Email, amount, reference, input.CallbackURL)
	if err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}
	if !tx.Status {
		return nil, errs.Validation("payment", tx.Message)
	}

	method := domain.PaymentMethodCreditCard
	app.PaymentMethod = &method
	app.PaymentReference = &reference
	app.PaymentAmount = &amount
	if err := s.repo.Save(app); err != nil {
		return nil, err
	}

	return &dto.InitializePaymentResponse{
		AuthorizationURL: tx.AuthorizationURL,
		AccessCode:       tx.AccessCode,
		Reference:        tx.Reference,
	}, nil
}

// ConfirmGateway checks the transaction state with the gateway after the
// applicant returns from checkout. Only a successful charge marks the payment
// completed; a gateway-verified card payment needs no manual review.
func (s *paymentService) ConfirmGateway(reference string) (*domain.Application, error) {
	if reference == "" {
		return nil, errs.Validation("reference", "is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	tx, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}
	if !tx.Status || tx.ProviderStatus != "success" {
		return nil, errs.Validation("payment", "payment not successful")
	}

	app, err := s.repo.FindByPaymentReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application")
		}
		return nil, err
	}

	now := time.Now()
	app.PaymentStatus = domain.PaymentCompleted
	app.PaymentDate = &now
	app.PaymentVerifiedAt = &now

	if err := s.repo.Save(app); err != nil {
		return nil, err
	}

	s.publishVerified(app)
	return app, nil
}

func (s *paymentService) publishVerified(app *domain.Application) {
	publishEvent(s.producer, s.logger, dto.EventPaymentVerified, app, "")
}
