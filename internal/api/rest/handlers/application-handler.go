package handlers

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ss-immigration/application_service/internal/api/rest/middleware"
	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/dto"
	"github.com/ss-immigration/application_service/internal/helper"
	"github.com/ss-immigration/application_service/internal/helper/utils"
	"github.com/ss-immigration/application_service/internal/services"
)

const maxReceiptSize = 5 << 20 // 5 MB

var allowedReceiptExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type ApplicationHandler struct {
	svc        services.ApplicationService
	paymentSvc services.PaymentService
	auth       helper.Auth
}

func NewApplicationHandler(svc services.ApplicationService, paymentSvc services.PaymentService, auth helper.Auth) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, paymentSvc: paymentSvc, auth: auth}
}

func (h *ApplicationHandler) SetupRoutes(app *fiber.App) {
	authed := middleware.AuthMiddleware(h.auth)

	apps := app.Group("/api/applications", authed)
	apps.Post("/", h.Submit)
	apps.Get("/", h.List)
	apps.Get("/:id", h.Get)

	apps.Post("/:id/payment-proof", h.UploadPaymentProof)
	apps.Post("/:id/verify-payment", h.VerifyPayment)
	apps.Post("/:id/reject-payment", h.RejectPayment)
	apps.Post("/:id/approve", h.Approve)
	apps.Post("/:id/reject", h.Reject)
	apps.Patch("/:id/status", h.UpdateStatus)

	app.Get("/api/statistics", authed, h.Statistics)

	payments := app.Group("/api/payments", authed)
	payments.Post("/initialize", h.InitializePayment)
	payments.Get("/verify", h.VerifyGatewayPayment)
}

func (h *ApplicationHandler) Submit(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.SubmitApplicationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	app, err := h.svc.Submit(actor, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, app)
}

func (h *ApplicationHandler) List(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	apps, err := h.svc.List(actor)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, apps)
}

func (h *ApplicationHandler) Get(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	app, err := h.svc.Get(actor, id)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) UploadPaymentProof(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	fileHeader, err := ctx.FormFile("payment_proof")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "payment_proof file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedReceiptExts[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "payment proof must be a PDF or image file")
	}
	if fileHeader.Size > maxReceiptSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "payment proof must not exceed 5 MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer file.Close()

	app, err := h.svc.AttachPaymentProof(actor, id, fileHeader.Filename, file)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) VerifyPayment(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	app, err := h.svc.VerifyPayment(actor, id)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) RejectPayment(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	var requestBody dto.ReasonRequest
	_ = ctx.BodyParser(&requestBody)

	app, err := h.svc.RejectPayment(actor, id, requestBody.Reason)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) Approve(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	app, err := h.svc.Approve(actor, id)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) Reject(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	var requestBody dto.ReasonRequest
	_ = ctx.BodyParser(&requestBody)

	app, err := h.svc.Reject(actor, id, requestBody.Reason)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) UpdateStatus(ctx *fiber.Ctx) error {
	actor, id, ok := h.actorAndID(ctx)
	if !ok {
		return nil
	}

	var requestBody dto.UpdateStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	app, err := h.svc.UpdateStatus(actor, id, requestBody.Status)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) Statistics(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.svc.Statistics(actor)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, stats)
}

func (h *ApplicationHandler) InitializePayment(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.InitializePaymentRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.ApplicationID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "application_id is required")
	}

	res, err := h.paymentSvc.Initialize(actor, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *ApplicationHandler) VerifyGatewayPayment(ctx *fiber.Ctx) error {
	reference := strings.TrimSpace(ctx.Query("reference"))
	if reference == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "reference is required")
	}

	app, err := h.paymentSvc.ConfirmGateway(reference)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

// actorAndID resolves the caller and the :id path param; on failure the HTTP
// response is already written and ok is false.
func (h *ApplicationHandler) actorAndID(ctx *fiber.Ctx) (actor *domain.User, id uint, ok bool) {
	actor, err := actorFrom(ctx)
	if err != nil {
		_ = utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		return nil, 0, false
	}

	raw, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil || raw == 0 {
		_ = utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid application id")
		return nil, 0, false
	}
	return actor, uint(raw), true
}

func actorFrom(ctx *fiber.Ctx) (*domain.User, error) {
	claims, ok := ctx.Locals("user").(dto.AuthResponse)
	if !ok || claims.UserID == 0 {
		return nil, fmt.Errorf("unauthorized")
	}
	return &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  domain.Role(claims.Role),
	}, nil
}
