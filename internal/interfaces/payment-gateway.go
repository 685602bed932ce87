package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayTransaction is the slice of the provider response the core consumes:
// the success flag plus the provider-side transaction status.
type GatewayTransaction struct {
	Status           bool
	ProviderStatus   string
	Message          string
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, email string, amount decimal.Decimal, reference, callbackURL string) (*GatewayTransaction, error)
	VerifyTransaction(ctx context.Context, reference string) (*GatewayTransaction, error)
}
