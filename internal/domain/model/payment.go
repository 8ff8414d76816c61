package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus converts a string into a known PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return PaymentStatus(s), true
	}
	return "", false
}

// PaymentType classifies what a payment is for
type PaymentType string

const (
	PaymentTypeRent    PaymentType = "RENT"
	PaymentTypeDeposit PaymentType = "DEPOSIT"
	PaymentTypeFee     PaymentType = "FEE"
)

// Payment represents a payment record
type Payment struct {
	ID                    string          `gorm:"primaryKey;size:36" json:"id"`
	UserID                string          `gorm:"column:user_id;not null;index" json:"userId"`
	RoomID                string          `gorm:"column:room_id;not null;index" json:"roomId"`
	Amount                decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency              string          `gorm:"size:3;not null" json:"currency"`
	Status                PaymentStatus   `gorm:"size:20;not null" json:"status"`
	Type                  PaymentType     `gorm:"size:20;not null" json:"type"`
	Description           string          `json:"description,omitempty"`
	StripePaymentIntentID string          `gorm:"column:stripe_payment_intent_id;unique;size:100" json:"stripePaymentIntentId,omitempty"`
	StripeChargeID        string          `gorm:"column:stripe_charge_id;size:100" json:"stripeChargeId,omitempty"`
	CreatedAt             time.Time       `gorm:"default:now()" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"default:now()" json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// MinorUnits returns the amount in the smallest currency unit (e.g. cents),
// rounded half away from zero. Stripe only accepts integer minor units.
func (p *Payment) MinorUnits() int64 {
	return p.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
