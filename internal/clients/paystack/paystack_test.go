package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTransaction(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "PAY-SS-IMM-12345678-001-1700000000",
			},
		})
	}))
	defer srv.Close()

	client := NewWithBaseURL("sk_test_xyz", srv.URL)
	tx, err := client.InitializeTransaction(
		context.Background(),
		"deng@example.com",
		decimal.NewFromInt(500),
		"PAY-SS-IMM-12345678-001-1700000000",
		"https://app.test/callback",
	)
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_xyz", gotAuth)
	// amount goes over the wire in the smallest currency unit
	assert.Equal(t, float64(50000), gotBody["amount"])
	assert.Equal(t, "deng@example.com", gotBody["email"])
	assert.Equal(t, "GHS", gotBody["currency"])
	assert.Equal(t, "https://app.test/callback", gotBody["callback_url"])

	assert.True(t, tx.Status)
	assert.Equal(t, "https://checkout.paystack.com/abc123", tx.AuthorizationURL)
	assert.Equal(t, "abc123", tx.AccessCode)
}

func TestInitializeTransactionOmitsEmptyCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasCallback := body["callback_url"]
		assert.False(t, hasCallback)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": true})
	}))
	defer srv.Close()

	client := NewWithBaseURL("sk_test_xyz", srv.URL)
	_, err := client.InitializeTransaction(context.Background(), "a@b.c", decimal.NewFromInt(1), "ref", "")
	require.NoError(t, err)
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/PAY-REF-1", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"status":    "success",
				"reference": "PAY-REF-1",
				"amount":    50000,
			},
		})
	}))
	defer srv.Close()

	client := NewWithBaseURL("sk_test_xyz", srv.URL)
	tx, err := client.VerifyTransaction(context.Background(), "PAY-REF-1")
	require.NoError(t, err)

	assert.True(t, tx.Status)
	assert.Equal(t, "success", tx.ProviderStatus)
	assert.Equal(t, "PAY-REF-1", tx.Reference)
}

func TestErrorStatusIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer srv.Close()

	client := NewWithBaseURL("sk_bad", srv.URL)
	_, err := client.VerifyTransaction(context.Background(), "PAY-REF-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestMissingSecretKey(t *testing.T) {
	client := New("")
	_, err := client.InitializeTransaction(context.Background(), "a@b.c", decimal.NewFromInt(1), "ref", "")
	assert.Error(t, err)
	_, err = client.VerifyTransaction(context.Background(), "ref")
	assert.Error(t, err)
}
