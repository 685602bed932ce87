package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ss-immigration/application_service/internal/interfaces"
)

const defaultBaseURL = "https://api.paystack.co"

type transactionData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
	Amount           int64  `json:"amount"`
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    transactionData `json:"data"`
}

type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

func New(secretKey string) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// NewWithBaseURL is used by tests to point the client at a local server.
func NewWithBaseURL(secretKey, baseURL string) *Client {
	c := New(secretKey)
	c.baseURL = baseURL
	return c
}

// InitializeTransaction starts a hosted checkout for amount (major currency
// units; Paystack wants the smallest unit, so it is multiplied by 100).
func (c *Client) InitializeTransaction(
	ctx context.Context,
	email string,
	amount decimal.Decimal,
	reference string,
	callbackURL string,
) (*interfaces.GatewayTransaction, error) {
	if c.secretKey == "" {
		return nil, errors.New("missing paystack secret key")
	}

	payload := map[string]interface{}{
		"email":     email,
		"amount":    amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"reference": reference,
		"currency":  "GHS",
	}
	if callbackURL != "" {
		payload["callback_url"] = callbackURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	res, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return &interfaces.GatewayTransaction{
		Status:           res.Status,
		Message:          res.Message,
		AuthorizationURL: res.Data.AuthorizationURL,
		AccessCode:       res.Data.AccessCode,
		Reference:        res.Data.Reference,
	}, nil
}

func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*interfaces.GatewayTransaction, error) {
	if c.secretKey == "" {
		return nil, errors.New("missing paystack secret key")
	}

	res, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	return &interfaces.GatewayTransaction{
		Status:         res.Status,
		Message:        res.Message,
		ProviderStatus: res.Data.Status,
		Reference:      res.Data.Reference,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("paystack http error (%d): %s", resp.StatusCode, string(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack error (%d): %s", resp.StatusCode, out.Message)
	}

	return &out, nil
}
