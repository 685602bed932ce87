package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/dto"
	"github.com/ss-immigration/application_service/internal/errs"
	"github.com/ss-immigration/application_service/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	initResult   *interfaces.GatewayTransaction
	initErr      error
	verifyResult *interfaces.GatewayTransaction
	verifyErr    error

	lastEmail     string
	lastAmount    decimal.Decimal
	lastReference string
}

func (g *fakeGateway) InitializeTransaction(ctx context.Context, email string, amount decimal.Decimal, reference, callbackURL string) (*interfaces.GatewayTransaction, error) {
	g.lastEmail = email
	g.lastAmount = amount
	g.lastReference = reference
	if g.initErr != nil {
		return nil, g.initErr
	}
	return g.initResult, nil
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*interfaces.GatewayTransaction, error) {
	g.lastReference = reference
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyResult, nil
}

type paymentFixture struct {
	appSvc   ApplicationService
	svc      PaymentService
	repo     *fakeRepo
	gateway  *fakeGateway
	producer *fakeProducer
}

func newPaymentFixture() *paymentFixture {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	producer := &fakeProducer{}
	appSvc := NewApplicationService(repo, &fakeUploader{}, producer, &fakeDocs{}, zap.NewNop())
	svc := NewPaymentService(repo, gateway, producer, zap.NewNop())
	return &paymentFixture{appSvc: appSvc, svc: svc, repo: repo, gateway: gateway, producer: producer}
}

func TestInitializeStartsCheckout(t *testing.T) {
	f := newPaymentFixture()
	app, err := f.appSvc.Submit(applicant, validSubmitRequest())
	require.NoError(t, err)

	f.gateway.initResult = &interfaces.GatewayTransaction{
		Status:           true,
		AuthorizationURL: "https://checkout.test/abc",
		AccessCode:       "abc",
		Reference:        "ignored-by-assert",
	}

	res, err := f.svc.Initialize(applicant, dto.InitializePaymentRequest{ApplicationID: app.ID})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.test/abc", res.AuthorizationURL)
	assert.Equal(t, app.Email, f.gateway.lastEmail)
	assert.Equal(t, "500", f.gateway.lastAmount.String())
	assert.Regexp(t, `^PAY-SS-IMM-\d{1,8}-\d{3}-\d+$`, f.gateway.lastReference)

	stored, err := f.repo.FindByID(app.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentReference)
	assert.Equal(t, f.gateway.lastReference, *stored.PaymentReference)
	require.NotNil(t, stored.PaymentMethod)
	assert.Equal(t, domain.PaymentMethodCreditCard, *stored.PaymentMethod)
}

func TestInitializeForeignApplication(t *testing.T) {
	f := newPaymentFixture()
	app, err := f.appSvc.Submit(applicant, validSubmitRequest())
	require.NoError(t, err)

	_, err = f.svc.Initialize(applicant2, dto.InitializePaymentRequest{ApplicationID: app.ID})
	assert.True(t, errs.IsNotFound(err))
}

func TestInitializeRejectsCompletedPayment(t *testing.T) {
	f := newPaymentFixture()
	app, err := f.appSvc.Submit(applicant, validSubmitRequest())
	require.NoError(t, err)

	stored := f.repo.apps[app.ID]
	stored.PaymentStatus = domain.PaymentCompleted

	_, err = f.svc.Initialize(applicant, dto.InitializePaymentRequest{ApplicationID: app.ID})
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "payment_status", v.Field)
}

func TestInitializeSurfacesGatewayDecline(t *testing.T) {
	f := newPaymentFixture()
	app, err := f.appSvc.Submit(applicant, validSubmitRequest())
	require.NoError(t, err)

	f.gateway.initResult = &interfaces.GatewayTransaction{Status: false, Message: "invalid key"}

	_, err = f.svc.Initialize(applicant, dto.InitializePaymentRequest{ApplicationID: app.ID})
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "invalid key", v.Message)
}

func TestConfirmGatewayCompletesPayment(t *testing.T) {
	f := newPaymentFixture()
	app, err := f.appSvc.Submit(applicant, validSubmitRequest())
	require.NoError(t, err)

	f.gateway.initResult = &interfaces.GatewayTransaction{Status: true}
	_, err = f.svc.Initialize(applicant, dto.InitializePaymentRequest{ApplicationID: app.ID})
	require.NoError(t, err)
	reference := f.gateway.lastReference

	f.gateway.verifyResult = &interfaces.GatewayTransaction{Status: true, ProviderStatus: "success", Reference: reference}

	updated, err := f.svc.ConfirmGateway(reference)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentCompleted, updated.PaymentStatus)
	assert.NotNil(t, updated.PaymentDate)
	assert.Contains(t, f.producer.keys, dto.EventPaymentVerified)
}

func TestConfirmGatewayRejectsFailedCharge(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.verifyResult = &interfaces.GatewayTransaction{Status: true, ProviderStatus: "abandoned"}

	_, err := f.svc.ConfirmGateway("PAY-SS-IMM-12345678-001-1700000000")
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "payment", v.Field)
}

func TestConfirmGatewayUnknownReference(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.verifyResult = &interfaces.GatewayTransaction{Status: true, ProviderStatus: "success"}

	_, err := f.svc.ConfirmGateway("PAY-SS-IMM-00000000-000-0")
	assert.True(t, errs.IsNotFound(err))
}

func TestConfirmGatewayPropagatesGatewayError(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.verifyErr = errors.New("network timeout")

	_, err := f.svc.ConfirmGateway("PAY-SS-IMM-00000000-000-0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network timeout")
}
