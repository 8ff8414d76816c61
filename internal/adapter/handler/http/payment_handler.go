package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainerrors "github.com/roomlet/payment-service/internal/domain/errors"
	"github.com/roomlet/payment-service/internal/domain/model"
	"github.com/roomlet/payment-service/internal/domain/processor"
	"github.com/roomlet/payment-service/internal/middleware/auth"
	"github.com/roomlet/payment-service/internal/usecase"
)

type PaymentHandler struct {
	service *usecase.PaymentService
	logger  *zap.Logger
}

func NewPaymentHandler(service *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

type CreatePaymentRequest struct {
	RoomID      string          `json:"roomId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Description string          `json:"description"`
}

// PaymentResponse is the API shape of a payment record
type PaymentResponse struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"userId"`
	RoomID                string          `json:"roomId"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	Status                string          `json:"status"`
	Type                  string          `json:"type"`
	Description           string          `json:"description,omitempty"`
	StripePaymentIntentID string          `json:"stripePaymentIntentId,omitempty"`
	StripeChargeID        string          `json:"stripeChargeId,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func toPaymentResponse(p *model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                    p.ID,
		UserID:                p.UserID,
		RoomID:                p.RoomID,
		Amount:                p.Amount,
		Currency:              p.Currency,
		Status:                string(p.Status),
		Type:                  string(p.Type),
		Description:           p.Description,
		StripePaymentIntentID: p.StripePaymentIntentID,
		StripeChargeID:        p.StripeChargeID,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toPaymentResponses(payments []*model.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}
	return responses
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authentication required",
			"code":  "AUTH_REQUIRED",
		})
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
			"code":  "VALIDATION_FAILED",
		})
	}

	h.logger.Info("Creating payment",
		zap.String("user_id", userID),
		zap.String("room_id", req.RoomID))

	payment, err := h.service.CreatePayment(c.Request().Context(), userID, usecase.CreatePaymentParams{
		RoomID:      req.RoomID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Type:        model.PaymentType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.service.GetPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func (h *PaymentHandler) GetPaymentsByUser(c echo.Context) error {
	userID := c.Param("userId")

	var status model.PaymentStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, ok := model.ParsePaymentStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Unknown payment status: " + raw,
				"code":  "INVALID_STATUS",
			})
		}
		status = parsed
	}

	payments, err := h.service.GetPaymentsByUser(c.Request().Context(), userID, status)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) GetPaymentsByRoom(c echo.Context) error {
	payments, err := h.service.GetPaymentsByRoom(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) GetPaymentsByUserAndRoom(c echo.Context) error {
	payments, err := h.service.GetPaymentsByUserAndRoom(c.Request().Context(), c.Param("userId"), c.Param("roomId"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	id := c.Param("id")
	h.logger.Info("Confirming payment", zap.String("payment_id", id))

	payment, err := h.service.ConfirmPayment(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	id := c.Param("id")
	h.logger.Info("Refunding payment", zap.String("payment_id", id))

	payment, err := h.service.RefundPayment(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func (h *PaymentHandler) UpdatePaymentStatus(c echo.Context) error {
	id := c.Param("id")

	status, ok := model.ParsePaymentStatus(c.QueryParam("status"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unknown payment status: " + c.QueryParam("status"),
			"code":  "INVALID_STATUS",
		})
	}

	h.logger.Info("Updating payment status",
		zap.String("payment_id", id),
		zap.String("status", string(status)))

	payment, err := h.service.UpdatePaymentStatus(c.Request().Context(), id, status)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func (h *PaymentHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Payment service is healthy")
}

// errorResponse maps domain errors onto HTTP statuses
func (h *PaymentHandler) errorResponse(c echo.Context, err error) error {
	var (
		notFound     *domainerrors.NotFoundError
		invalidState *domainerrors.InvalidStateError
		validation   *domainerrors.ValidationError
		processorErr *processor.ProcessorError
	)

	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Payment not found",
			"code":  "NOT_FOUND",
		})
	case errors.As(err, &invalidState):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": err.Error(),
			"code":  "INVALID_STATE",
		})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
			"code":  "VALIDATION_FAILED",
		})
	case errors.As(err, &processorErr):
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": "Payment processor call failed",
			"code":  "PROCESSOR_ERROR",
		})
	}

	h.logger.Error("Unhandled error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error",
		"code":  "INTERNAL",
	})
}
