package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ss-immigration/application_service/internal/errs"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseServiceError maps the error taxonomy to HTTP statuses: validation
// failures are 400 with the offending field attached (duplicate receipts also
// carry error_type so the client can render the dedicated message), permission
// failures 403, not-found 404, anything else 500.
func ResponseServiceError(ctx *fiber.Ctx, err error) error {
	if v, ok := errs.AsValidation(err); ok {
		body := fiber.Map{
			"error": v.Message,
			"field": v.Field,
		}
		if v.Field == "payment_proof" {
			body["error_type"] = "duplicate_payment_receipt"
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(body)
	}
	if errs.IsPermission(err) {
		return ResponseError(ctx, fiber.StatusForbidden, err.Error())
	}
	if errs.IsNotFound(err) {
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	return ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
}
