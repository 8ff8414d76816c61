package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainerrors "github.com/roomlet/payment-service/internal/domain/errors"
	"github.com/roomlet/payment-service/internal/domain/model"
	"github.com/roomlet/payment-service/internal/domain/processor"
	"github.com/roomlet/payment-service/internal/domain/repository"
)

// PaymentService orchestrates the payment lifecycle: it creates records
// against the processor, confirms them by polling processor state, refunds
// completed payments, and allows a direct status override.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	processor   processor.PaymentProcessor
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	proc processor.PaymentProcessor,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		processor:   proc,
		logger:      logger,
	}
}

// CreatePaymentParams carries the validated-at-the-edge creation request
type CreatePaymentParams struct {
	RoomID      string
	Amount      decimal.Decimal
	Currency    string
	Type        model.PaymentType
	Description string
}

// CreatePayment creates a payment intent with the processor and persists a
// PENDING payment record holding the processor intent ID.
func (s *PaymentService) CreatePayment(ctx context.Context, userID string, params CreatePaymentParams) (*model.Payment, error) {
	if userID == "" {
		return nil, domainerrors.NewValidationError("userId", "user ID is required")
	}
	if params.RoomID == "" {
		return nil, domainerrors.NewValidationError("roomId", "room ID is required")
	}
	if !params.Amount.IsPositive() {
		return nil, domainerrors.NewValidationError("amount", "amount must be greater than 0")
	}
	if params.Currency == "" {
		return nil, domainerrors.NewValidationError("currency", "currency is required")
	}
	if params.Type == "" {
		return nil, domainerrors.NewValidationError("type", "payment type is required")
	}

	payment := &model.Payment{
		UserID:      userID,
		RoomID:      params.RoomID,
		Amount:      params.Amount,
		Currency:    params.Currency,
		Status:      model.PaymentStatusPending,
		Type:        params.Type,
		Description: params.Description,
	}

	intent, err := s.processor.CreateIntent(ctx, &processor.CreateIntentRequest{
		AmountMinorUnits: payment.MinorUnits(),
		Currency:         strings.ToLower(params.Currency),
		Description:      params.Description,
		Metadata: map[string]string{
			"user_id": userID,
			"room_id": params.RoomID,
			"type":    string(params.Type),
		},
	})
	if err != nil {
		s.logger.Error("Failed to create payment intent",
			zap.String("user_id", userID),
			zap.String("room_id", params.RoomID),
			zap.Error(err))
		return nil, err
	}

	payment.StripePaymentIntentID = intent.ID

	saved, err := s.paymentRepo.Save(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created payment",
		zap.String("payment_id", saved.ID),
		zap.String("user_id", userID),
		zap.String("room_id", params.RoomID))

	return saved, nil
}

// ConfirmPayment polls the processor for the intent's state. A "succeeded"
// intent completes the payment and records its charge ID; anything else,
// including a failed processor call, marks the payment FAILED. Processor
// failures here are a business outcome, not an error to the caller.
func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	intent, err := s.processor.RetrieveIntent(ctx, payment.StripePaymentIntentID)
	if err != nil {
		s.logger.Error("Failed to confirm payment",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		payment.Status = model.PaymentStatusFailed
		return s.paymentRepo.Save(ctx, payment)
	}

	if intent.Status == processor.StatusSucceeded {
		payment.Status = model.PaymentStatusCompleted
		payment.StripeChargeID = intent.LatestChargeID
	} else {
		payment.Status = model.PaymentStatusFailed
	}

	updated, err := s.paymentRepo.Save(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirmed payment",
		zap.String("payment_id", paymentID),
		zap.String("status", string(updated.Status)))

	return updated, nil
}

// RefundPayment refunds a completed payment against its charge. Only
// COMPLETED payments can be refunded; a processor failure propagates and
// leaves the payment COMPLETED.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != model.PaymentStatusCompleted {
		return nil, domainerrors.NewInvalidStateError(paymentID, string(payment.Status), "refund")
	}

	refundID, err := s.processor.CreateRefund(ctx, payment.StripeChargeID)
	if err != nil {
		s.logger.Error("Failed to refund payment",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, err
	}

	payment.Status = model.PaymentStatusRefunded
	updated, err := s.paymentRepo.Save(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Refunded payment",
		zap.String("payment_id", paymentID),
		zap.String("refund_id", refundID))

	return updated, nil
}

// UpdatePaymentStatus sets the status unconditionally, bypassing the state
// machine. Operational escape hatch for manual correction.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, paymentID string, status model.PaymentStatus) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment.Status = status
	updated, err := s.paymentRepo.Save(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Updated payment status",
		zap.String("payment_id", paymentID),
		zap.String("status", string(status)))

	return updated, nil
}

// GetPayment returns a single payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	return s.paymentRepo.FindByID(ctx, paymentID)
}

// GetPaymentsByUser returns all payments made by a user. When status is
// non-empty the result is filtered to that status.
func (s *PaymentService) GetPaymentsByUser(ctx context.Context, userID string, status model.PaymentStatus) ([]*model.Payment, error) {
	if status != "" {
		return s.paymentRepo.FindByUserIDAndStatus(ctx, userID, status)
	}
	return s.paymentRepo.FindByUserID(ctx, userID)
}

// GetPaymentsByRoom returns all payments against a room
func (s *PaymentService) GetPaymentsByRoom(ctx context.Context, roomID string) ([]*model.Payment, error) {
	return s.paymentRepo.FindByRoomID(ctx, roomID)
}

// GetPaymentsByUserAndRoom returns a user's payments against a room
func (s *PaymentService) GetPaymentsByUserAndRoom(ctx context.Context, userID, roomID string) ([]*model.Payment, error) {
	return s.paymentRepo.FindByUserIDAndRoomID(ctx, userID, roomID)
}
