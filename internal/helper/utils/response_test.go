package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ss-immigration/application_service/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ResponseServiceError(ctx, err)
	})

	res, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, reqErr)
	defer res.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func TestResponseServiceErrorValidation(t *testing.T) {
	status, body := doRequest(t, errs.Validation("email", "a valid email is required"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email", body["field"])
	assert.Equal(t, "a valid email is required", body["error"])
	_, tagged := body["error_type"]
	assert.False(t, tagged)
}

func TestResponseServiceErrorDuplicateReceipt(t *testing.T) {
	status, body := doRequest(t, errs.DuplicateReceipt("SS-IMM-12345678-042"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "payment_proof", body["field"])
	assert.Equal(t, "duplicate_payment_receipt", body["error_type"])
	assert.Contains(t, body["error"], "SS-IMM-12345678-042")
}

func TestResponseServiceErrorPermission(t *testing.T) {
	status, body := doRequest(t, errs.Permission("permission denied"))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "permission denied", body["error"])
}

func TestResponseServiceErrorNotFound(t *testing.T) {
	status, body := doRequest(t, errs.NotFound("application"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "application not found", body["error"])
}

func TestResponseServiceErrorFallback(t *testing.T) {
	status, _ := doRequest(t, errors.New("unexpected"))
	assert.Equal(t, http.StatusInternalServerError, status)
}
