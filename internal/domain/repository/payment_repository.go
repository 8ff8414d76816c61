package repository

import (
	"context"

	"github.com/roomlet/payment-service/internal/domain/model"
)

// PaymentRepository is the persistence contract for payment records.
// Save is insert-or-update keyed on the payment ID and returns the stored
// record with timestamps populated.
type PaymentRepository interface {
	Save(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	FindByID(ctx context.Context, id string) (*model.Payment, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Payment, error)
	FindByRoomID(ctx context.Context, roomID string) ([]*model.Payment, error)
	FindByUserIDAndRoomID(ctx context.Context, userID, roomID string) ([]*model.Payment, error)
	FindByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error)
	FindByUserIDAndStatus(ctx context.Context, userID string, status model.PaymentStatus) ([]*model.Payment, error)
	FindByStripePaymentIntentID(ctx context.Context, intentID string) (*model.Payment, error)
	FindByStripeChargeID(ctx context.Context, chargeID string) (*model.Payment, error)
}
