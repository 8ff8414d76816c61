package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainerrors "github.com/roomlet/payment-service/internal/domain/errors"
	"github.com/roomlet/payment-service/internal/domain/model"
	"github.com/roomlet/payment-service/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new gorm-backed payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts or updates a payment by ID. New records are assigned a UUID;
// GORM populates created_at/updated_at.
func (r *paymentRepository) Save(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Save(payment).Error
	if err != nil {
		r.logger.Error("Failed to save payment",
			zap.String("payment_id", payment.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFoundError(id)
		}
		r.logger.Error("Failed to get payment by ID",
			zap.String("payment_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Payment, error) {
	return r.findAll(ctx, "user_id = ?", userID)
}

func (r *paymentRepository) FindByRoomID(ctx context.Context, roomID string) ([]*model.Payment, error) {
	return r.findAll(ctx, "room_id = ?", roomID)
}

func (r *paymentRepository) FindByUserIDAndRoomID(ctx context.Context, userID, roomID string) ([]*model.Payment, error) {
	return r.findAll(ctx, "user_id = ? AND room_id = ?", userID, roomID)
}

func (r *paymentRepository) FindByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error) {
	return r.findAll(ctx, "status = ?", status)
}

func (r *paymentRepository) FindByUserIDAndStatus(ctx context.Context, userID string, status model.PaymentStatus) ([]*model.Payment, error) {
	return r.findAll(ctx, "user_id = ? AND status = ?", userID, status)
}

// FindByStripePaymentIntentID returns the payment holding the given intent
// ID; the column carries a unique constraint so at most one row matches.
func (r *paymentRepository) FindByStripePaymentIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	return r.findOne(ctx, "stripe_payment_intent_id = ?", intentID)
}

func (r *paymentRepository) FindByStripeChargeID(ctx context.Context, chargeID string) (*model.Payment, error) {
	return r.findOne(ctx, "stripe_charge_id = ?", chargeID)
}

func (r *paymentRepository) findAll(ctx context.Context, query string, args ...interface{}) ([]*model.Payment, error) {
	var payments []*model.Payment

	err := r.db.WithContext(ctx).
		Where(query, args...).
		Find(&payments).Error

	if err != nil {
		r.logger.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) findOne(ctx context.Context, query string, arg string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFoundError(arg)
		}
		r.logger.Error("Failed to get payment", zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}
